package configuration

import (
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// secondsToDurationHookFunc decodes plain numbers into a time.Duration of that many seconds,
// so "sampleInterval: 2.5" means 2.5s instead of 2ns.
func secondsToDurationHookFunc() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))

	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != durationType {
			return data, nil
		}
		// viper defaults are already typed durations
		if f == durationType {
			return data, nil
		}

		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return time.Duration(reflect.ValueOf(data).Int()) * time.Second, nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return time.Duration(reflect.ValueOf(data).Uint()) * time.Second, nil
		case reflect.Float32, reflect.Float64:
			seconds := reflect.ValueOf(data).Float()
			return time.Duration(seconds * float64(time.Second)), nil
		default:
			return data, nil
		}
	}
}
