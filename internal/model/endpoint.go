package model

// Endpoint is the unit of permission granularity: a logical route template
// such as "/places/:uuid", compared as a stored string, never resolved
// against the live URL.
type Endpoint struct {
	Tracked
	Route string `gorm:"index;not null" json:"route"`
}

func (Endpoint) TableName() string { return "endpoints" }
