package citystore

import "errors"

var (
	ErrLoadAllFailed        = errors.New("load all cities failed")
	ErrSingleCityLoadFailed = errors.New("load city failed")
	ErrCreateFailed         = errors.New("create city failed")
	ErrDeleteFailed         = errors.New("delete city failed")
	ErrInvalidActionKind    = errors.New("unknown action type")
)

// User-visible rejection messages, one per operation
const (
	MsgLoadAllFailed = "There was an error loading data."
	MsgLoadFailed    = "There was an error loading City data."
	MsgCreateFailed  = "There was an error creating the city."
	MsgDeleteFailed  = "There was an error deleting the city."
)
