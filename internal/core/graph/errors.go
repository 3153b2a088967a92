package graph

import "errors"

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrEdgeNotFound = errors.New("edge not found")
	ErrUnknownKind  = errors.New("unknown node kind")
)
