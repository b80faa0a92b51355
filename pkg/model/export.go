package model

const (
	ExportIncluded = "1"
	ExportSkipped  = "0"
)

// ExportRecord is one entry of the registration export script.
type ExportRecord struct {
	ID    CourseID `json:"id" csv:"id"`
	Value int      `json:"value" csv:"value"`
	IsSel string   `json:"isSel" csv:"isSel"`
}

// BuildExportRecords lists the selection in order. Courses without an entry
// in values export 0; courses without an entry in included are exported as
// included.
func BuildExportRecords(selection Selection, values map[CourseID]int, included map[CourseID]bool) []ExportRecord {
	records := make([]ExportRecord, 0, selection.Len())
	for _, id := range selection.IDs() {
		isSel := ExportIncluded
		if inc, ok := included[id]; ok && !inc {
			isSel = ExportSkipped
		}
		records = append(records, ExportRecord{ID: id, Value: values[id], IsSel: isSel})
	}
	return records
}

// ImportExportRecords rebuilds the selection, point values and inclusion
// flags from exported records. Records for ids missing from the catalog are
// returned as missing; records with an IsSel other than "0"/"1" are treated
// as included.
func ImportExportRecords(records []ExportRecord, catalog []Course) (Selection, map[CourseID]int, map[CourseID]bool, []CourseID) {
	ids := make([]CourseID, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	selection, missing := SelectionFromIDs(ids, catalog)

	values := make(map[CourseID]int, len(records))
	included := make(map[CourseID]bool, len(records))
	for _, r := range records {
		if !selection.Contains(r.ID) {
			continue
		}
		values[r.ID] = r.Value
		included[r.ID] = r.IsSel != ExportSkipped
	}
	return selection, values, included, missing
}
