package errors

import stdErrors "errors"

// DumpInfo carries the loggable view of an error chain.
type DumpInfo struct {
	Code       string
	TopMessage string
	Chain      []string
}

// Dump walks the error chain and collects the pieces worth logging.
func Dump(err error) DumpInfo {
	info := DumpInfo{}
	if err == nil {
		return info
	}

	info.TopMessage = err.Error()
	if typed := As(err); typed != nil {
		info.Code = string(typed.Code())
	}

	for cursor := err; cursor != nil; cursor = stdErrors.Unwrap(cursor) {
		info.Chain = append(info.Chain, cursor.Error())
	}
	return info
}
