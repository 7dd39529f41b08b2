package repository

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"

	"focolog/core/rowstore"
	"focolog/model/entity"
)

// RowEncoder lets an entity adjust its row before it is written, e.g. to
// drop derived fields or flatten nested values into text columns.
type RowEncoder interface {
	EncodeRow(row map[string]interface{})
}

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	dateType    = reflect.TypeOf(entity.Date{})
	datePtrType = reflect.TypeOf(&entity.Date{})
	timeType    = reflect.TypeOf(time.Time{})
)

// Decode maps a row onto out, a pointer to an entity. The hosted database
// returns numbers as strings and select fields as {id, value} objects, so
// decoding is weakly typed.
func Decode(row rowstore.Row, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook:       mapstructure.DecodeHookFuncType(rowHook),
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]interface{}(row))
}

// Encode turns an entity into a row keyed by its JSON field names, without id.
func Encode(v interface{}) (rowstore.Row, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var row rowstore.Row
	if err := json.Unmarshal(b, &row); err != nil {
		return nil, err
	}
	delete(row, "id")
	if enc, ok := v.(RowEncoder); ok {
		enc.EncodeRow(row)
	}
	return row, nil
}

type hookFunc func(from, to reflect.Type, data interface{}) (interface{}, error)

var hooks = []hookFunc{selectValueHook, decimalHook, dateHook, timeHook, numericStringHook, jsonTextHook}

// rowHook chains the hooks, stopping when one yields nil.
func rowHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	for _, h := range hooks {
		out, err := h(from, to, data)
		if err != nil {
			return nil, err
		}
		if out == nil {
			return nil, nil
		}
		data = out
		from = reflect.TypeOf(out)
	}
	return data, nil
}

func selectValueHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.String || from.Kind() != reflect.Map {
		return data, nil
	}
	if m, ok := data.(map[string]interface{}); ok {
		if v, ok := m["value"]; ok {
			return v, nil
		}
	}
	return data, nil
}

func decimalHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(strings.TrimSpace(v))
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	}
	return data, nil
}

func dateHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	switch to {
	case datePtrType:
		if s, ok := data.(string); ok && strings.TrimSpace(s) == "" {
			return nil, nil
		}
	case dateType:
		switch v := data.(type) {
		case string:
			return entity.ParseDate(v)
		case time.Time:
			return entity.NewDate(v), nil
		}
	}
	return data, nil
}

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", entity.DateLayout}

func timeHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != timeType || from.Kind() != reflect.String {
		return data, nil
	}
	s := strings.TrimSpace(data.(string))
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("invalid timestamp %q", s)
}

// numericStringHook accepts "12.00" style integers.
func numericStringHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return data, nil
	}
	s := strings.TrimSpace(data.(string))
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return int64(f), nil
}

// jsonTextHook decodes struct lists stored as JSON text.
func jsonTextHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.Struct {
		return data, nil
	}
	s := strings.TrimSpace(data.(string))
	if s == "" {
		return reflect.MakeSlice(to, 0, 0).Interface(), nil
	}
	ptr := reflect.New(to)
	if err := json.Unmarshal([]byte(s), ptr.Interface()); err != nil {
		return nil, fmt.Errorf("invalid json list: %w", err)
	}
	return ptr.Elem().Interface(), nil
}
