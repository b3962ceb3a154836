package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordChannelScanned(t *testing.T) {
	successBefore := testutil.ToFloat64(ChannelsScannedTotal.WithLabelValues("success"))
	failureBefore := testutil.ToFloat64(ChannelsScannedTotal.WithLabelValues("failure"))

	RecordChannelScanned(true)
	RecordChannelScanned(true)
	RecordChannelScanned(false)

	assert.Equal(t, successBefore+2, testutil.ToFloat64(ChannelsScannedTotal.WithLabelValues("success")))
	assert.Equal(t, failureBefore+1, testutil.ToFloat64(ChannelsScannedTotal.WithLabelValues("failure")))
}

func TestRecordMessagesExamined(t *testing.T) {
	before := testutil.ToFloat64(MessagesExaminedTotal)

	RecordMessagesExamined(5)
	RecordMessagesExamined(0)
	RecordMessagesExamined(-3)

	assert.Equal(t, before+5, testutil.ToFloat64(MessagesExaminedTotal))
}

func TestRecordEntriesMatched(t *testing.T) {
	before := testutil.ToFloat64(EntriesMatchedTotal.WithLabelValues("Tech"))

	RecordEntriesMatched("Tech", 3)
	RecordEntriesMatched("Tech", 0)

	assert.Equal(t, before+3, testutil.ToFloat64(EntriesMatchedTotal.WithLabelValues("Tech")))
}

func TestRecordScanError(t *testing.T) {
	before := testutil.ToFloat64(ScanErrorsTotal.WithLabelValues("channel_fetch"))

	RecordScanError("channel_fetch")

	assert.Equal(t, before+1, testutil.ToFloat64(ScanErrorsTotal.WithLabelValues("channel_fetch")))
}

func TestRecordReportRendered(t *testing.T) {
	before := testutil.ToFloat64(ReportsRenderedTotal.WithLabelValues("docx", "success"))

	RecordReportRendered("docx", true, 120*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(ReportsRenderedTotal.WithLabelValues("docx", "success")))
}
