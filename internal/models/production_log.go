package models

// ProductionLog: one shift's production record. Rows are only ever inserted.
type ProductionLog struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	OperatorName     string    `gorm:"size:255;not null" json:"operator_name"`
	MachineID        string    `gorm:"size:100;not null" json:"machine_id"`
	DieNumber        *string   `gorm:"size:100" json:"die_number"`
	Shift            *string   `gorm:"size:50" json:"shift"`
	Date             Date      `gorm:"type:date;not null;index" json:"date"`
	StartTime        TimeOfDay `gorm:"type:time;not null" json:"start_time"`
	EndTime          TimeOfDay `gorm:"type:time;not null" json:"end_time"`
	QuantityProduced int       `gorm:"not null;default:0" json:"quantity_produced"`
	QuantityRejected int       `gorm:"not null;default:0" json:"quantity_rejected"`
	Notes            *string   `gorm:"type:text" json:"notes"`
}

func (ProductionLog) TableName() string { return "production_logs" }
