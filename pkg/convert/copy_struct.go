package convert

import (
	"reflect"

	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
)

// StructAssign copies fields with matching names from src into dst.
// dst must be a pointer to a struct.
func StructAssign(src any, dst any) any {
	copier.Copy(dst, src)
	return dst
}

// StructToMap converts a struct to a map through JSON marshalling,
// so field names follow the struct's json tags.
func StructToMap(param any, data map[string]interface{}) error {
	str, err := sonic.Marshal(param)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(str, &data)
}

// GetStructFieldNames returns the field names of the given struct
// or struct pointer.
func GetStructFieldNames(input interface{}) []string {
	getType := reflect.TypeOf(input)
	if getType.Kind() == reflect.Ptr {
		getType = getType.Elem()
	}
	if getType.Kind() != reflect.Struct {
		return nil
	}

	fields := make([]string, 0, getType.NumField())
	for i := 0; i < getType.NumField(); i++ {
		fields = append(fields, getType.Field(i).Name)
	}
	return fields
}
