package testdroid

// Device represents a device model available in the cloud inventory.
type Device struct {
	ID              int64            `json:"id"                        yaml:"id"`
	DisplayName     string           `json:"displayName"               yaml:"display_name"`
	OSType          string           `json:"osType,omitempty"          yaml:"os_type,omitempty"`
	SoftwareVersion *SoftwareVersion `json:"softwareVersion,omitempty" yaml:"software_version,omitempty"`
	Online          bool             `json:"online"                    yaml:"online"`
	Locked          bool             `json:"locked"                    yaml:"locked"`
	Enabled         bool             `json:"enabled"                   yaml:"enabled"`
	CreditsPrice    float64          `json:"creditsPrice,omitempty"    yaml:"credits_price,omitempty"`
}

// SoftwareVersion describes the OS build running on a device model.
type SoftwareVersion struct {
	ID             int64  `json:"id"                       yaml:"id"`
	ReleaseVersion string `json:"releaseVersion,omitempty" yaml:"release_version,omitempty"`
	APILevel       int    `json:"apiLevel,omitempty"       yaml:"api_level,omitempty"`
}

// Label tags devices with an attribute (e.g. an OS version) inside a group.
type Label struct {
	ID          int64  `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"`
	DisplayName string `json:"displayName" yaml:"display_name"`
}

// LabelGroup is a named collection of labels (e.g. "OS version").
type LabelGroup struct {
	ID          int64  `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"`
	DisplayName string `json:"displayName" yaml:"display_name"`
}

// Project is a user-defined test suite that owns test runs.
type Project struct {
	ID   int64  `json:"id"             yaml:"id"`
	Name string `json:"name"           yaml:"name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// TestRun is a single execution instance of a project.
type TestRun struct {
	ID          int64  `json:"id"                    yaml:"id"`
	DisplayName string `json:"displayName,omitempty" yaml:"display_name,omitempty"`
	State       string `json:"state,omitempty"       yaml:"state,omitempty"`
	ProjectID   int64  `json:"projectId,omitempty"   yaml:"project_id,omitempty"`
	CreateTime  int64  `json:"createTime,omitempty"  yaml:"create_time,omitempty"`
}

// DeviceSession is a leased exclusive claim on a remote device.
type DeviceSession struct {
	ID         int64   `json:"id"                   yaml:"id"`
	State      string  `json:"state,omitempty"      yaml:"state,omitempty"`
	CreateTime int64   `json:"createTime,omitempty" yaml:"create_time,omitempty"`
	Device     *Device `json:"device,omitempty"     yaml:"device,omitempty"`
}

// Device session states reported by the API.
const (
	DeviceSessionStateWaiting   = "WAITING"
	DeviceSessionStateRunning   = "RUNNING"
	DeviceSessionStateSucceeded = "SUCCEEDED"
	DeviceSessionStateExcluded  = "EXCLUDED"
)

// ProxySession is a network proxy endpoint bridging to a claimed device.
type ProxySession struct {
	Type      string `json:"type"               yaml:"type"`
	Host      string `json:"host"               yaml:"host"`
	Port      int    `json:"port"               yaml:"port"`
	SessionID int64  `json:"sessionId"          yaml:"session_id"`
	SerialID  string `json:"serialId,omitempty" yaml:"serial_id,omitempty"`
}

// Proxy types supported by the proxy plugin.
const (
	ProxyTypeADB        = "adb"
	ProxyTypeMarionette = "marionette"
)

// ListResponse is the paged envelope the API wraps collection results in.
type ListResponse[T any] struct {
	Offset int    `json:"offset"           yaml:"offset"`
	Limit  int    `json:"limit"            yaml:"limit"`
	Total  int    `json:"total"            yaml:"total"`
	Search string `json:"search,omitempty" yaml:"search,omitempty"`
	Sort   string `json:"sort,omitempty"   yaml:"sort,omitempty"`
	Data   []T    `json:"data"             yaml:"data"`
}

// DeviceList represents a paged list of Device resources.
type DeviceList = ListResponse[Device]

// ProjectList represents a paged list of Project resources.
type ProjectList = ListResponse[Project]

// TestRunList represents a paged list of TestRun resources.
type TestRunList = ListResponse[TestRun]
