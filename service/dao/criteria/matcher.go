package criteria

import (
	"github.com/viant/kernel/service/dao"
)

// Match reports whether value satisfies every parameter named name.
// Parameters with other names are ignored; no parameters matches everything.
func Match(name, value string, parameters []*dao.Parameter) bool {
	for _, param := range parameters {
		if param == nil || param.Name != name {
			continue
		}
		switch actual := param.Value.(type) {
		case string:
			if value != actual {
				return false
			}
		case []string:
			if !contains(actual, value) {
				return false
			}
		}
	}
	return true
}

// MatchAll reports whether every named value satisfies its parameters.
func MatchAll(values map[string]string, parameters []*dao.Parameter) bool {
	for name, value := range values {
		if !Match(name, value, parameters) {
			return false
		}
	}
	return true
}

func contains(candidates []string, value string) bool {
	for _, candidate := range candidates {
		if candidate == value {
			return true
		}
	}
	return false
}
