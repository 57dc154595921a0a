package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanRecord scans a single kv record from a database row
func ScanRecord(scanner Scanner) (*Record, error) {
	record := &Record{}
	err := scanner.Scan(&record.Key, &record.Value, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ScanRecords scans multiple kv records from database rows
func ScanRecords(rows Rows) ([]*Record, error) {
	records := []*Record{}
	for rows.Next() {
		record, err := ScanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
