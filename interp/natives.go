package interp

import (
	"fmt"
	"time"
	"unicode/utf8"
)

func addNatives() (ret map[string]*NativeFunction) {
	ret = make(map[string]*NativeFunction)

	funcs := []func() (string, *NativeFunction){
		addClock,
		addLen,
	}
	for _, fn := range funcs {
		k, v := fn()
		ret[k] = v
	}

	return
}

// clock reports wall-clock time in milliseconds since the Unix epoch.
func addClock() (string, *NativeFunction) {
	return "clock", &NativeFunction{
		Name:   "clock",
		Params: 0,
		Fn: func(args []interface{}) (interface{}, error) {
			return float64(time.Now().UnixNano() / int64(time.Millisecond)), nil
		},
	}
}

func addLen() (string, *NativeFunction) {
	return "len", &NativeFunction{
		Name:   "len",
		Params: 1,
		Fn: func(args []interface{}) (interface{}, error) {
			switch v := args[0].(type) {
			case *Array:
				return float64(len(v.Elements)), nil
			case string:
				return float64(utf8.RuneCountInString(v)), nil
			}
			return nil, fmt.Errorf("Can't take the length of %s.", Stringify(args[0]))
		},
	}
}
