package model

// RefLevel names one level of the government affairs hierarchy.
type RefLevel string

const (
	LevelAffair      RefLevel = "urusan"
	LevelField       RefLevel = "bidang_urusan"
	LevelProgram     RefLevel = "program"
	LevelActivity    RefLevel = "kegiatan"
	LevelSubActivity RefLevel = "sub_kegiatan"
)

// RefLevels lists the five levels outermost first.
var RefLevels = []RefLevel{LevelAffair, LevelField, LevelProgram, LevelActivity, LevelSubActivity}

// ParseRefLevel accepts the level name used in URLs.
func ParseRefLevel(s string) (RefLevel, bool) {
	for _, l := range RefLevels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Parent returns the level above l, or "" for urusan.
func (l RefLevel) Parent() RefLevel {
	for i, x := range RefLevels {
		if x == l && i > 0 {
			return RefLevels[i-1]
		}
	}
	return ""
}

// RefNode is one node of the hierarchy. ParentCode is empty for urusan.
// Performance and Unit are only used by sub kegiatan.
type RefNode struct {
	Code        string `db:"kode" json:"code"`
	Name        string `db:"nama" json:"name"`
	ParentCode  string `db:"parent_kode" json:"parentCode,omitempty"`
	Performance string `db:"kinerja" json:"performance,omitempty"`
	Unit        string `db:"satuan" json:"unit,omitempty"`
}

// HierarchyPath is a sub-activity joined with all its ancestors.
// Ancestors are nullable because a broken parent reference yields NULL in the left join.
type HierarchyPath struct {
	AffairCode      NullableString `db:"urusan_kode" json:"affairCode"`
	AffairName      NullableString `db:"urusan_nama" json:"affairName"`
	FieldCode       NullableString `db:"bidang_kode" json:"fieldCode"`
	FieldName       NullableString `db:"bidang_nama" json:"fieldName"`
	ProgramCode     NullableString `db:"program_kode" json:"programCode"`
	ProgramName     NullableString `db:"program_nama" json:"programName"`
	ActivityCode    NullableString `db:"kegiatan_kode" json:"activityCode"`
	ActivityName    NullableString `db:"kegiatan_nama" json:"activityName"`
	SubActivityCode NullableString `db:"sub_kegiatan_kode" json:"subActivityCode"`
	SubActivityName NullableString `db:"sub_kegiatan_nama" json:"subActivityName"`
	Performance     NullableString `db:"kinerja" json:"performance"`
	SubActivityUnit NullableString `db:"sub_kegiatan_satuan" json:"subActivityUnit"`
}
