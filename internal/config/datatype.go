package config

import (
	"errors"
	"fmt"
	"strings"

	"eddcli/internal/edd"
)

// DataType selects which kind of EDD is being validated.
type DataType string

const (
	DataTypeWater DataType = "agua"
	DataTypeSoil  DataType = "solo"
)

// ErrInvalidDataType is returned for any data-type string other than
// "agua" or "solo" (case-insensitive).
var ErrInvalidDataType = errors.New("invalid data type: must be 'agua' or 'solo'")

// DataTypeConfig carries every data-type dependent setting, resolved once at
// pipeline start and threaded into the stages that need it. The sample table
// and id column are fixed identifiers of the reference schema, never user
// input.
type DataTypeConfig struct {
	Type        DataType
	SampleSheet string
	ResultSheet string
	SampleTable string
	SampleIDCol string
	// ListFields are the enumerated station columns checked against the
	// De-Para "Lists" sheet, in check order.
	ListFields []string
}

// ResolveDataType maps the operator-supplied data-type string to its full
// configuration. Fails before any I/O when the string is not recognized.
func ResolveDataType(raw string) (DataTypeConfig, error) {
	switch DataType(strings.ToLower(strings.TrimSpace(raw))) {
	case DataTypeWater:
		return DataTypeConfig{
			Type:        DataTypeWater,
			SampleSheet: "Monitoring_Sample",
			ResultSheet: "Monitoring_Sample_Result",
			SampleTable: "monitoring_sample",
			SampleIDCol: "sample_id",
			ListFields: []string{
				edd.ColSampleType,
				edd.ColQualityCode,
				edd.ColLaboratory,
				edd.ColMatrix,
				edd.ColPeriodicity,
			},
		}, nil
	case DataTypeSoil:
		return DataTypeConfig{
			Type:        DataTypeSoil,
			SampleSheet: "Soil_Sample",
			ResultSheet: "Soil_Result",
			SampleTable: "soil_sample",
			SampleIDCol: "sample_id",
			ListFields: []string{
				edd.ColSampleType,
				edd.ColLaboratory,
				edd.ColMatrix,
				edd.ColPeriodicity,
			},
		}, nil
	default:
		return DataTypeConfig{}, fmt.Errorf("%w: %q", ErrInvalidDataType, raw)
	}
}
