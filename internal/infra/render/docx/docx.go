// Package docx renders report models as OOXML word-processing documents.
// The package writes the minimal part set by hand (content types, package
// relationships, styles, document body) into a ZIP container, which avoids
// pulling in a heavyweight document library for a fixed layout.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"channel-report/internal/domain/entity"
)

// Page margins in twentieths of a point: 10 mm top and bottom, 25 mm on
// the binding side, 15 mm outside.
const (
	marginTop    = 567
	marginBottom = 567
	marginLeft   = 1417
	marginRight  = 850
)

// Body text is Times New Roman 14 pt; OOXML run sizes are half-points.
const fontSizeHalfPoints = 28

const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>
`

	packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>
`

	stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:docDefaults>
<w:rPrDefault>
<w:rPr>
<w:rFonts w:ascii="Times New Roman" w:hAnsi="Times New Roman" w:cs="Times New Roman"/>
<w:sz w:val="28"/>
<w:szCs w:val="28"/>
</w:rPr>
</w:rPrDefault>
</w:docDefaults>
</w:styles>
`
)

// Renderer writes a report as a DOCX document.
type Renderer struct{}

// NewRenderer creates a DOCX renderer.
func NewRenderer() Renderer { return Renderer{} }

// Extension returns "docx".
func (Renderer) Extension() string { return "docx" }

// Render writes the complete DOCX package to w. Section names become
// centered bold headings, entry titles become hyperlinks to the source
// message, and bodies are justified.
func (Renderer) Render(model entity.ReportModel, w io.Writer) error {
	zw := zip.NewWriter(w)

	doc, rels := buildDocument(model)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/_rels/document.xml.rels", rels},
		{"word/document.xml", doc},
	}
	for _, part := range parts {
		pw, err := zw.Create(part.name)
		if err != nil {
			zw.Close()
			return fmt.Errorf("create part %s: %w", part.name, err)
		}
		if _, err := io.WriteString(pw, part.content); err != nil {
			zw.Close()
			return fmt.Errorf("write part %s: %w", part.name, err)
		}
	}

	return zw.Close()
}

// buildDocument produces word/document.xml and its relationship part. The
// relationship part carries the styles reference plus one external
// relationship per entry hyperlink.
func buildDocument(model entity.ReportModel) (doc, rels string) {
	var body strings.Builder
	var relEntries strings.Builder

	relEntries.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` + "\n")
	nextRelID := 2

	writeHeading(&body, "Report "+model.Window.Label())

	for _, section := range model.Sections {
		writeHeading(&body, section.Name)

		if len(section.Entries) == 0 {
			writeParagraph(&body, "both", "", "No matching posts.")
			continue
		}

		for _, entry := range section.Entries {
			relID := fmt.Sprintf("rId%d", nextRelID)
			nextRelID++
			fmt.Fprintf(&relEntries,
				`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="%s" TargetMode="External"/>`+"\n",
				relID, escape(entry.SourceURL))

			writeHyperlink(&body, relID, entry.Title)
			writeParagraph(&body, "left", "<w:i/>", entry.Date)
			for _, line := range strings.Split(entry.Body, "\n") {
				if line == "" {
					continue
				}
				writeParagraph(&body, "both", "", line)
			}
			body.WriteString("<w:p/>\n")
		}
	}

	fmt.Fprintf(&body,
		`<w:sectPr><w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d"/></w:sectPr>`+"\n",
		marginTop, marginRight, marginBottom, marginLeft)

	doc = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` + "\n" +
		"<w:body>\n" + body.String() + "</w:body>\n</w:document>\n"

	rels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + "\n" +
		relEntries.String() + "</Relationships>\n"

	return doc, rels
}

func writeHeading(b *strings.Builder, text string) {
	fmt.Fprintf(b,
		`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p>`+"\n",
		escape(text))
}

func writeHyperlink(b *strings.Builder, relID, text string) {
	fmt.Fprintf(b,
		`<w:p><w:hyperlink r:id="%s"><w:r><w:rPr><w:color w:val="0563C1"/><w:u w:val="single"/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:hyperlink></w:p>`+"\n",
		relID, escape(text))
}

func writeParagraph(b *strings.Builder, justification, runProps, text string) {
	rpr := ""
	if runProps != "" {
		rpr = "<w:rPr>" + runProps + "</w:rPr>"
	}
	fmt.Fprintf(b,
		`<w:p><w:pPr><w:jc w:val="%s"/></w:pPr><w:r>%s<w:t xml:space="preserve">%s</w:t></w:r></w:p>`+"\n",
		justification, rpr, escape(text))
}

func escape(s string) string {
	var buf strings.Builder
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return ""
	}
	return buf.String()
}
