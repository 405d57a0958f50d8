package model

// Row is a single record returned by the store's REST interface. Rows are
// loosely typed on read; the consuming services build validated entities
// from them.
type Row map[string]interface{}
