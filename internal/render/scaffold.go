package render

import (
	"archive/zip"
	"fmt"
	"os"
)

// DefaultTemplateName is where the template subcommand writes by default.
const DefaultTemplateName = "CV_Template_Simple.docx"

var scaffoldParts = []struct {
	name string
	body string
}{
	{name: "[Content_Types].xml", body: `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`},
	{name: "_rels/.rels", body: `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`},
	{name: "word/_rels/document.xml.rels", body: `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`},
	// 9pt dark grey justified run; margins 15mm top/bottom and 12mm left/right in twips.
	{name: "word/document.xml", body: `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:pPr><w:jc w:val="both"/></w:pPr><w:r><w:rPr><w:color w:val="333333"/><w:sz w:val="18"/></w:rPr><w:t>{` + Placeholder + `}</w:t></w:r></w:p><w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="850" w:right="680" w:bottom="850" w:left="680" w:header="708" w:footer="708" w:gutter="0"/></w:sectPr></w:body></w:document>`},
}

// Scaffold writes a minimal Word template holding a single {cv_content}
// paragraph, ready to be restyled in a word processor.
func Scaffold(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &RenderError{Message: "create template", Cause: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &RenderError{Message: "close template", Cause: cerr}
		}
	}()

	zw := zip.NewWriter(f)
	for _, part := range scaffoldParts {
		w, err := zw.Create(part.name)
		if err != nil {
			return &RenderError{Message: fmt.Sprintf("add %s", part.name), Cause: err}
		}
		if _, err := w.Write([]byte(part.body)); err != nil {
			return &RenderError{Message: fmt.Sprintf("write %s", part.name), Cause: err}
		}
	}

	if err := zw.Close(); err != nil {
		return &RenderError{Message: "finish template archive", Cause: err}
	}
	return nil
}
