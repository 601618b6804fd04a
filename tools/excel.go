package tools

import (
	"fmt"
	"reflect"

	"github.com/xuri/excelize/v2"
)

const ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportToExcel writes a slice of structs to sheet, one row per element
// under a header row. Column titles come from the `excel` tag (field name
// when absent, "-" skips the field); nil pointers become empty cells. The
// header is written even when data is empty.
func ExportToExcel(f *excelize.File, sheet string, data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("export %T: not a slice", data)
	}

	elemType := v.Type().Elem()
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("export %T: not a slice of structs", data)
	}

	if sheet == "" {
		sheet = "Sheet1"
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	type column struct {
		index  []int
		header string
	}
	var columns []column

	var collect func(t reflect.Type, parent []int)
	collect = func(t reflect.Type, parent []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if sf.PkgPath != "" {
				continue
			}
			idx := append(append([]int(nil), parent...), i)
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
				collect(sf.Type, idx)
				continue
			}
			tag := sf.Tag.Get("excel")
			if tag == "-" {
				continue
			}
			if tag == "" {
				tag = sf.Name
			}
			columns = append(columns, column{index: idx, header: tag})
		}
	}
	collect(elemType, nil)

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col.header
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	line := 2
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		if elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}

		values := make([]any, len(columns))
		for j, col := range columns {
			fv := elem.FieldByIndex(col.index)
			switch {
			case fv.Kind() == reflect.Ptr && fv.IsNil():
				values[j] = ""
			case fv.Kind() == reflect.Ptr:
				values[j] = fv.Elem().Interface()
			default:
				values[j] = fv.Interface()
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		line++
	}
	return nil
}
