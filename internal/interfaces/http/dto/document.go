package dto

// DocumentType describes one document type and its routes
type DocumentType struct {
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	Producer     string `json:"producer"`
	Template     string `json:"template,omitempty"`
	Filename     string `json:"filename"`
	PreviewPath  string `json:"preview_path"`
	DownloadPath string `json:"download_path"`
}

// DocumentTypeList is the body of GET /docs/types
type DocumentTypeList struct {
	Types []DocumentType `json:"types"`
}

// Banner is the body of GET /
type Banner struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
}
