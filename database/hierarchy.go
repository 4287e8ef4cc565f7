package database

import (
	"fmt"
	"strings"

	"rkpd/model"
)

type levelTable struct {
	table     string
	parentCol string
	alias     string
	// code and name column aliases used by HierarchyPath
	codeAs, nameAs string
}

var levelTables = map[model.RefLevel]levelTable{
	model.LevelAffair:      {table: "master_urusan", alias: "u", codeAs: "urusan_kode", nameAs: "urusan_nama"},
	model.LevelField:       {table: "master_bidang_urusan", parentCol: "urusan_kode", alias: "b", codeAs: "bidang_kode", nameAs: "bidang_nama"},
	model.LevelProgram:     {table: "master_program", parentCol: "bidang_urusan_kode", alias: "p", codeAs: "program_kode", nameAs: "program_nama"},
	model.LevelActivity:    {table: "master_kegiatan", parentCol: "program_kode", alias: "k", codeAs: "kegiatan_kode", nameAs: "kegiatan_nama"},
	model.LevelSubActivity: {table: "master_sub_kegiatan", parentCol: "kegiatan_kode", alias: "s", codeAs: "sub_kegiatan_kode", nameAs: "sub_kegiatan_nama"},
}

func tableFor(level model.RefLevel) (levelTable, error) {
	t, ok := levelTables[level]
	if !ok {
		return levelTable{}, fmt.Errorf("unknown hierarchy level %q", level)
	}
	return t, nil
}

func refSelect(level model.RefLevel, t levelTable) string {
	parent := `''`
	if t.parentCol != "" {
		parent = t.parentCol
	}
	extra := `'' AS kinerja, '' AS satuan`
	if level == model.LevelSubActivity {
		extra = `kinerja, satuan`
	}
	return `SELECT kode, nama, ` + parent + ` AS parent_kode, ` + extra + ` FROM ` + t.table
}

// ListRefNodes returns the nodes of one level ordered by code, optionally filtered by
// code or name and by parent code.
func ListRefNodes(dbtx DBTX, level model.RefLevel, search, parentCode string, limit int) ([]model.RefNode, error) {
	t, err := tableFor(level)
	if err != nil {
		return nil, err
	}
	q := refSelect(level, t) + ` WHERE 1=1`
	var args []interface{}
	if search != "" {
		q += ` AND (kode LIKE ? OR nama LIKE ?)`
		p := likePattern(search)
		args = append(args, p, p)
	}
	if parentCode != "" && t.parentCol != "" {
		q += ` AND ` + t.parentCol + ` = ?`
		args = append(args, parentCode)
	}
	q += ` ORDER BY kode`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	nodes := []model.RefNode{}
	if err := dbtx.Select(&nodes, q, args...); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", level, err)
	}
	return nodes, nil
}

func GetRefNode(dbtx DBTX, level model.RefLevel, code string) (model.RefNode, error) {
	var n model.RefNode
	t, err := tableFor(level)
	if err != nil {
		return n, err
	}
	if err := dbtx.Get(&n, refSelect(level, t)+` WHERE kode = ?`, code); err != nil {
		return n, fmt.Errorf("failed to get %s %s: %w", level, code, err)
	}
	return n, nil
}

func CreateRefNode(dbtx DBTX, level model.RefLevel, n model.RefNode) error {
	t, err := tableFor(level)
	if err != nil {
		return err
	}
	cols, vals := refColumns(level, t)
	q := `INSERT INTO ` + t.table + ` (` + strings.Join(cols, ", ") + `) VALUES (` + strings.Join(vals, ", ") + `)`
	if _, err := dbtx.NamedExec(q, n); err != nil {
		return fmt.Errorf("CreateRefNode (%s %s) failed: %w", level, n.Code, err)
	}
	return nil
}

// UpdateRefNode rewrites the node identified by originalCode; the code itself may change.
func UpdateRefNode(dbtx DBTX, level model.RefLevel, originalCode string, n model.RefNode) error {
	t, err := tableFor(level)
	if err != nil {
		return err
	}
	cols, vals := refColumns(level, t)
	sets := make([]string, len(cols))
	for i := range cols {
		sets[i] = cols[i] + ` = ` + vals[i]
	}
	q := `UPDATE ` + t.table + ` SET ` + strings.Join(sets, ", ") + ` WHERE kode = :original_kode`
	arg := map[string]interface{}{
		"kode": n.Code, "nama": n.Name, "parent_kode": n.ParentCode,
		"kinerja": n.Performance, "satuan": n.Unit, "original_kode": originalCode,
	}
	res, err := dbtx.NamedExec(q, arg)
	if err != nil {
		return fmt.Errorf("UpdateRefNode (%s %s) failed: %w", level, originalCode, err)
	}
	return mustAffect(res)
}

func DeleteRefNode(dbtx DBTX, level model.RefLevel, code string) error {
	t, err := tableFor(level)
	if err != nil {
		return err
	}
	res, err := dbtx.Exec(`DELETE FROM `+t.table+` WHERE kode = ?`, code)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", level, code, err)
	}
	return mustAffect(res)
}

func refColumns(level model.RefLevel, t levelTable) (cols, vals []string) {
	cols = []string{"kode", "nama"}
	vals = []string{":kode", ":nama"}
	if t.parentCol != "" {
		cols = append(cols, t.parentCol)
		vals = append(vals, ":parent_kode")
	}
	if level == model.LevelSubActivity {
		cols = append(cols, "kinerja", "satuan")
		vals = append(vals, ":kinerja", ":satuan")
	}
	return cols, vals
}

// ListHierarchyPaths returns every node of a level joined with all of its ancestors.
// Ancestors that do not exist come back as NULL.
func ListHierarchyPaths(dbtx DBTX, level model.RefLevel) ([]model.HierarchyPath, error) {
	depth := -1
	for i, l := range model.RefLevels {
		if l == level {
			depth = i
		}
	}
	if depth < 0 {
		return nil, fmt.Errorf("unknown hierarchy level %q", level)
	}

	leaf := levelTables[level]
	var cols []string
	from := leaf.table + ` ` + leaf.alias
	child := leaf
	for i := depth; i >= 0; i-- {
		t := levelTables[model.RefLevels[i]]
		if i < depth {
			from += ` LEFT JOIN ` + t.table + ` ` + t.alias + ` ON ` + t.alias + `.kode = ` + child.alias + `.` + child.parentCol
			child = t
		}
		cols = append(cols, t.alias+`.kode AS `+t.codeAs, t.alias+`.nama AS `+t.nameAs)
	}
	if level == model.LevelSubActivity {
		cols = append(cols, `s.kinerja AS kinerja`, `s.satuan AS sub_kegiatan_satuan`)
	}

	q := `SELECT ` + strings.Join(cols, ", ") + ` FROM ` + from + ` ORDER BY ` + leaf.alias + `.kode`
	paths := []model.HierarchyPath{}
	if err := dbtx.Select(&paths, q); err != nil {
		return nil, fmt.Errorf("failed to list %s paths: %w", level, err)
	}
	return paths, nil
}

// ReplaceRefNodesInTx upserts seed rows of one level.
func ReplaceRefNodesInTx(dbtx DBTX, level model.RefLevel, nodes []model.RefNode) error {
	t, err := tableFor(level)
	if err != nil {
		return err
	}
	cols, vals := refColumns(level, t)
	q := `INSERT OR REPLACE INTO ` + t.table + ` (` + strings.Join(cols, ", ") + `) VALUES (` + strings.Join(vals, ", ") + `)`
	for _, n := range nodes {
		if _, err := dbtx.NamedExec(q, n); err != nil {
			return fmt.Errorf("failed to replace %s %s: %w", level, n.Code, err)
		}
	}
	return nil
}
