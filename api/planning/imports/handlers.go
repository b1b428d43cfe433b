package imports

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"PraxisPlan/api"
	"PraxisPlan/api/constants"
	"PraxisPlan/internal/config"
	"PraxisPlan/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// uploadRequest is the decoded multipart import request shared by the
// detect/preview/commit handlers.
type uploadRequest struct {
	userID    string
	fileBytes []byte
	filename  string
	mapping   *ColumnMapping // nil when the client wants auto-detection
	cfg       ParseConfig
}

func readUploadRequest(r *http.Request) (*uploadRequest, error) {
	if err := r.ParseMultipartForm(config.ImportMaxUploadBytes); err != nil {
		return nil, fmt.Errorf("failed to parse multipart form: %v", err)
	}

	userID := r.FormValue("user_id")
	if userID == "" {
		return nil, errors.New(constants.ErrUserIDRequired)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, errors.New(constants.ErrMissingFile)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %v", err)
	}

	req := &uploadRequest{
		userID:    userID,
		fileBytes: fileBytes,
		filename:  header.Filename,
		cfg: ParseConfig{
			Delimiter: DelimiterFromName(r.FormValue("delimiter")),
			HasHeader: r.FormValue("has_header") != "false",
		},
	}

	if mappingsJSON := r.FormValue("mappings"); mappingsJSON != "" {
		m := &ColumnMapping{}
		if err := json.Unmarshal([]byte(mappingsJSON), m); err != nil {
			return nil, fmt.Errorf("invalid mappings JSON: %v", err)
		}
		req.mapping = m
	}
	return req, nil
}

// decodeAndParse runs decode, mapping resolution and the row parser; the
// returned mapping is the one actually used (client-supplied or detected).
func (u *uploadRequest) decodeAndParse() (ParseResult, ColumnMapping, error) {
	rows, isSpreadsheet, err := DecodeFile(u.fileBytes, u.filename, u.cfg.Delimiter)
	if err != nil {
		return ParseResult{}, ColumnMapping{}, err
	}
	if len(rows) > config.ImportMaxRows {
		return ParseResult{}, ColumnMapping{}, fmt.Errorf("file has %d rows, the limit is %d", len(rows), config.ImportMaxRows)
	}
	u.cfg.ExcelSerial = isSpreadsheet

	mapping := ColumnMapping{}
	if u.mapping != nil {
		mapping = *u.mapping
	} else if u.cfg.HasHeader {
		mapping = DetectColumnMapping(rows[0])
	}

	result, err := ParseRows(rows, mapping, u.cfg)
	if err != nil {
		return ParseResult{}, mapping, err
	}
	return result, mapping, nil
}

// DetectMappingHandler returns the header row and the heuristically detected
// column mapping for user review. Unmatched fields come back empty.
func DetectMappingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := readUploadRequest(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		rows, _, err := DecodeFile(req.fileBytes, req.filename, req.cfg.Delimiter)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		headers, _, err := splitHeader(rows, req.cfg.HasHeader)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"headers": headers,
			"mapping": DetectColumnMapping(headers),
		})
	}
}

// PreviewImportHandler parses the upload and returns the batch summary plus
// therapy resolution, without any writes.
func PreviewImportHandler(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		req, err := readUploadRequest(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, mapping, err := req.decodeAndParse()
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		catalog, err := LoadCatalog(ctx, pgxPool, req.userID)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery)
			return
		}
		resolution := ResolveTherapies(result.Valid, catalog)

		w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":  true,
			"mapping":  mapping,
			"preview":  BuildPreview(result.Valid),
			"errors":   result.Errors,
			"warnings": result.Warnings,
			"missing":  resolution.Missing,
		})
	}
}

// CommitImportHandler runs the full pipeline and upserts the monthly plan
// aggregates. When therapy names are missing from the catalog the commit is
// held back until the client confirms with import_anyway=true; confirmed
// commits skip only the affected rows.
func CommitImportHandler(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		req, err := readUploadRequest(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		importAnyway := r.FormValue("import_anyway") == "true"

		result, _, err := req.decodeAndParse()
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		catalog, err := LoadCatalog(ctx, pgxPool, req.userID)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery)
			return
		}
		resolution := ResolveTherapies(result.Valid, catalog)

		if len(resolution.Missing) > 0 && !importAnyway {
			w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success":           false,
				"error":             "some therapy names are not in the catalog; confirm with import_anyway=true",
				"missing_therapies": resolution.Missing,
			})
			return
		}

		groups, skipped := AggregateGroups(result.Valid, resolution)
		commit := CommitGroups(ctx, pgxPool, req.userID, groups, skipped, resolution)

		// Row-level parse issues ride along in the final result
		commit.Errors = append(result.Errors, commit.Errors...)
		commit.Warnings = append(result.Warnings, commit.Warnings...)

		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf(
				"Import commit for user %s: %d imported, %d skipped, %d errors",
				req.userID, commit.ImportedCount, commit.SkippedCount, len(commit.Errors)))
		}

		w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(commit)
	}
}
