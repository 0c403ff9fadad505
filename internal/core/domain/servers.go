package domain

// Servers describes the backend endpoints and client settings exposed to
// the store front-end.
type Servers struct {
	MetadataServer       string `json:"metadataServer"`
	OperationServer      string `json:"operationServer"`
	Region               string `json:"region"`
	SupportSignIn        bool   `json:"supportSignIn"`
	ThemeName            string `json:"themeName"`
	AutoInstall          bool   `json:"autoInstall"`
	AllowShowPackageName bool   `json:"allowShowPackageName"`
	Production           bool   `json:"production"`
}
