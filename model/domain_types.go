package model

// OPD is a regional government work unit (Organisasi Perangkat Daerah).
type OPD struct {
	ID           int64  `db:"id" json:"id"`
	Code         string `db:"kode" json:"code"`
	Name         string `db:"nama" json:"name"`
	Abbreviation string `db:"singkatan" json:"abbreviation"`
}

// FundingSource is a sumber dana entry. IsInput marks sources selectable on a budget.
type FundingSource struct {
	ID      int64  `db:"id" json:"id"`
	Code    string `db:"kode" json:"code"`
	Name    string `db:"nama" json:"name"`
	IsInput bool   `db:"is_input" json:"isInput"`
}

// Schedule is one planning stage window (jadwal).
type Schedule struct {
	ID     int64  `db:"id" json:"id"`
	Stage  string `db:"tahapan" json:"stage"`
	Start  string `db:"mulai" json:"start"`
	End    string `db:"selesai" json:"end"`
	Status string `db:"status" json:"status"`
}

const (
	ScheduleOpen   = "Buka"
	ScheduleClosed = "Tutup"
)
