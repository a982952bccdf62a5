package schema

// Models lists every table managed by the store, in creation order
func Models() []interface{} {
	return []interface{}{
		&MediaItem{},
		&IngestState{},
	}
}
