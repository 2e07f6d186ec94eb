package dao

// Filter parameter names understood by the exit record DAOs.
const (
	ParamRunID     = "RunID"
	ParamName      = "Name"
	ParamParentPID = "ParentPID"
	ParamStatus    = "Status"
)

type Parameter struct {
	Name  string
	Value interface{}
}

func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
