// Package persistence archives benchmark results to disk as gzipped JSON,
// organized by datatype and date.
package persistence

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path"
	"time"
)

// DataFile describes a written archival file.
type DataFile struct {
	// Path is the full path of the written file.
	Path string
	// Size is the compressed size in bytes.
	Size int64
}

// WriteDataFile serializes result as JSON, compresses it and writes it under
// datadir/datatype/YYYY/MM/DD/. The measurement ID is embedded in the
// filename so runs can be correlated with log lines.
func WriteDataFile(datadir, datatype, mid string, result interface{}) (*DataFile, error) {
	timestamp := time.Now()
	dir := path.Join(datadir, datatype, timestamp.Format("2006/01/02"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	filepath := path.Join(dir, datatype+"-"+
		timestamp.Format("20060102T150405.000000000Z")+"."+mid+".json.gz")

	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	fp, err := os.OpenFile(filepath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, err
	}
	writer, err := gzip.NewWriterLevel(fp, gzip.BestSpeed)
	if err != nil {
		fp.Close()
		return nil, err
	}
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		fp.Close()
		return nil, err
	}
	if err := writer.Close(); err != nil {
		fp.Close()
		return nil, err
	}
	if err := fp.Close(); err != nil {
		return nil, err
	}

	info, err := os.Stat(filepath)
	if err != nil {
		return nil, err
	}
	return &DataFile{
		Path: filepath,
		Size: info.Size(),
	}, nil
}
