package model

// Item is one content record handed to the batch runner or the duplicate
// finder. Field names are not fixed: callers choose which keys hold the
// identifier, title and content, so records from any origin (database rows,
// feed entries, ad-hoc API payloads) can be processed without conversion.
type Item map[string]string
