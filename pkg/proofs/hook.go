// Package proofs accepts resumable proof-file uploads for performances over the
// tus protocol.
package proofs

import (
	"net/http"

	"github.com/apex/log"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	tusd "github.com/tus/tusd/v2/pkg/handler"
	"github.com/tus/tusd/v2/pkg/hooks"
)

type SessionParser interface {
	Parse(token string) (*clubauth.Session, error)
}

type AccessResolver interface {
	Resolve(req clubauth.Request) (*clubauth.Access, error)
}

// ProofHookHandler authorizes new uploads against the club gate and records
// finished uploads.
type ProofHookHandler struct {
	sessions        SessionParser
	gate            AccessResolver
	proofUploadStor stor.ProofUploadStor
}

func NewProofHookHandler(sessions SessionParser, gate AccessResolver, proofUploadStor stor.ProofUploadStor) *ProofHookHandler {
	return &ProofHookHandler{sessions: sessions, gate: gate, proofUploadStor: proofUploadStor}
}

func (h *ProofHookHandler) Setup() error {
	return nil
}

func (h *ProofHookHandler) InvokeHook(req hooks.HookRequest) (res hooks.HookResponse, err error) {
	switch req.Type {
	case hooks.HookPreCreate:
		return h.preCreate(req), nil
	case hooks.HookPostFinish:
		h.postFinish(req)
	}

	return res, nil
}

// preCreate rejects the upload unless the caller is a coach or above in the
// club named by the club_id metadata. Accepted uploads are stamped with the
// uploader so postFinish does not need the request again.
func (h *ProofHookHandler) preCreate(req hooks.HookRequest) (res hooks.HookResponse) {
	md, err := loadUploadMetaData(req.Event.Upload.MetaData)
	if err != nil {
		return rejectRequest(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.Parse(req.Event.HTTPRequest.Header.Get("Authorization"))
	if err != nil {
		return rejectRequest(http.StatusUnauthorized, "authentication required")
	}

	access, err := h.gate.Resolve(clubauth.Request{
		Session:             session,
		ClubID:              md.clubID,
		RequireClub:         true,
		RequireSessionMatch: true,
		MinRole:             clubauth.Coach,
	})
	if err != nil {
		status := clubauth.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Errorf("Proof upload access check failed: %s", err)
			return rejectRequest(status, "internal server error")
		}

		return rejectRequest(status, err.Error())
	}

	metaData := make(tusd.MetaData, len(req.Event.Upload.MetaData)+1)
	for k, v := range req.Event.Upload.MetaData {
		metaData[k] = v
	}
	metaData[MetaClubID] = access.ClubID
	metaData[MetaFilename] = md.filename
	metaData[MetaUploaderID] = access.UserID

	res.ChangeFileInfo.MetaData = metaData
	return res
}

func (h *ProofHookHandler) postFinish(req hooks.HookRequest) {
	upload := req.Event.Upload
	proof := &clubmodel.ProofUpload{
		ID:         upload.ID,
		ClubID:     upload.MetaData[MetaClubID],
		UploaderID: upload.MetaData[MetaUploaderID],
		Filename:   upload.MetaData[MetaFilename],
		Size:       upload.Size,
	}

	if proof.ClubID == "" || proof.UploaderID == "" {
		log.Errorf("Finished upload %s is missing its club or uploader", upload.ID)
		return
	}

	if _, err := h.proofUploadStor.CreateProofUpload(proof); err != nil {
		log.Errorf("Unable to record finished upload %s: %s", upload.ID, err)
		return
	}

	log.WithFields(log.Fields{"club": proof.ClubID, "upload": proof.ID, "size": proof.Size}).Info("proof upload finished")
}

func rejectRequest(status int, reason string) (res hooks.HookResponse) {
	res.RejectUpload = true
	res.HTTPResponse.StatusCode = status
	res.HTTPResponse.Body = reason
	return res
}
