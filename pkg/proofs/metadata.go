package proofs

import (
	"fmt"
	"strings"

	tusd "github.com/tus/tusd/v2/pkg/handler"
)

const (
	MetaClubID     = "club_id"
	MetaFilename   = "filename"
	MetaUploaderID = "uploader_id"
)

type uploadMetaData struct {
	clubID   string
	filename string
}

func loadUploadMetaData(metaData tusd.MetaData) (*uploadMetaData, error) {
	var md uploadMetaData

	if md.clubID = strings.TrimSpace(metaData[MetaClubID]); md.clubID == "" {
		return nil, fmt.Errorf("no %s field", MetaClubID)
	}

	if md.filename = strings.TrimSpace(metaData[MetaFilename]); md.filename == "" {
		return nil, fmt.Errorf("no %s field", MetaFilename)
	}

	if strings.ContainsAny(md.filename, `/\`) {
		return nil, fmt.Errorf("%s cannot contain a path", MetaFilename)
	}

	return &md, nil
}
