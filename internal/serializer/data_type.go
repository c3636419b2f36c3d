package serializer

import (
	"encoding/xml"

	"github.com/yasinhessnawi1/migrationpack/internal/models"
)

type dataTypeDocument struct {
	XMLName   xml.Name      `xml:"DataType"`
	Key       string        `xml:"Key,attr"`
	Alias     string        `xml:"Alias,attr"`
	Name      string        `xml:"Name,attr"`
	Info      dataTypeInfo  `xml:"Info"`
	PreValues dataPreValues `xml:"PreValues"`
}

type dataTypeInfo struct {
	Name         string `xml:"Name"`
	EditorAlias  string `xml:"EditorAlias"`
	DatabaseType string `xml:"DatabaseType"`
}

type dataPreValues struct {
	PreValue []dataPreValue `xml:"PreValue"`
}

type dataPreValue struct {
	Alias     string `xml:"Alias,attr"`
	SortOrder int    `xml:"SortOrder,attr"`
	Value     string `xml:",chardata"`
}

// WriteDataType stores dataType in dir under its name.
func WriteDataType(dir string, dataType *models.DataType) (string, error) {
	if dataType == nil {
		return "", nil
	}

	doc := dataTypeDocument{
		Key:   dataType.Key.String(),
		Alias: dataType.Name,
		Name:  dataType.Name,
		Info: dataTypeInfo{
			Name:         dataType.Name,
			EditorAlias:  dataType.EditorAlias,
			DatabaseType: dataType.DatabaseType,
		},
	}
	for _, pv := range dataType.PreValues {
		doc.PreValues.PreValue = append(doc.PreValues.PreValue, dataPreValue{Alias: pv.Alias, SortOrder: pv.SortOrder, Value: pv.Value})
	}

	return writeDocument(dir, dataType.Name, doc)
}
