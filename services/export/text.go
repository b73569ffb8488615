package export

// TextExporter returns the statement bytes unchanged.
type TextExporter struct{}

func (TextExporter) Format() string { return FormatTXT }

func (TextExporter) Export(content, name string) (*Artifact, error) {
	return &Artifact{
		Data:        []byte(content),
		Filename:    Filename(name, FormatTXT),
		ContentType: "text/plain; charset=utf-8",
	}, nil
}
