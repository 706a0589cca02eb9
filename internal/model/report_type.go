package model

// ReportType categorizes user reports about places.
type ReportType struct {
	Tracked
	Name        string  `gorm:"index;not null" json:"name"`
	Description *string `json:"description,omitempty"`
}

func (ReportType) TableName() string { return "report_types" }
