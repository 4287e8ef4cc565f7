package reference

import (
	"rkpd/aggregation"
	"rkpd/model"
)

type pathNode = aggregation.Node[model.HierarchyPath]

var (
	byAffair = aggregation.Required(
		func(p model.HierarchyPath) string { return p.AffairCode.String },
		func(p model.HierarchyPath) string { return p.AffairName.String })
	byField = aggregation.Required(
		func(p model.HierarchyPath) string { return p.FieldCode.String },
		func(p model.HierarchyPath) string { return p.FieldName.String })
	byProgram = aggregation.Required(
		func(p model.HierarchyPath) string { return p.ProgramCode.String },
		func(p model.HierarchyPath) string { return p.ProgramName.String })
	byActivity = aggregation.Required(
		func(p model.HierarchyPath) string { return p.ActivityCode.String },
		func(p model.HierarchyPath) string { return p.ActivityName.String })
)

// groupLevels: bidang urusan is listed under urusan, every lower level under bidang urusan
// and the levels in between.
var groupLevels = map[model.RefLevel][]aggregation.KeyFunc[model.HierarchyPath]{
	model.LevelField:       {byAffair},
	model.LevelProgram:     {byField},
	model.LevelActivity:    {byField, byProgram},
	model.LevelSubActivity: {byField, byProgram, byActivity},
}

// Group arranges the paths of one level under their ancestors. Paths with a missing
// ancestor are left out.
func Group(level model.RefLevel, paths []model.HierarchyPath) *pathNode {
	levels, ok := groupLevels[level]
	if !ok {
		return &pathNode{}
	}
	return aggregation.Aggregate(paths, levels...)
}
