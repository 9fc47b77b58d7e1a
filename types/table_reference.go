package types

import (
	"fmt"
	"regexp"
)

// project ids may be domain scoped ("example.com:project"), so the project part
// is greedy up to the last colon that still leaves "dataset.table" behind it.
var qualifiedTableName = regexp.MustCompile(`^(.+):([^:.]+)\.([^:.]+)$`)

// TableReference identifies a destination table in BigQuery.
type TableReference struct {
	ProjectID string `json:"projectId"`
	DatasetID string `json:"datasetId"`
	TableID   string `json:"tableId"`
}

func NewTableReference(projectID, datasetID, tableID string) *TableReference {
	return &TableReference{
		ProjectID: projectID,
		DatasetID: datasetID,
		TableID:   tableID,
	}
}

// ParseQualifiedTableName parses the "projectId:datasetId.tableId" form.
func ParseQualifiedTableName(name string) (*TableReference, error) {
	matches := qualifiedTableName.FindStringSubmatch(name)
	if matches == nil {
		return nil, fmt.Errorf("invalid qualified table name [%s], expected projectId:datasetId.tableId", name)
	}
	return NewTableReference(matches[1], matches[2], matches[3]), nil
}

// String returns the qualified table name.
func (t TableReference) String() string {
	return fmt.Sprintf("%s:%s.%s", t.ProjectID, t.DatasetID, t.TableID)
}
