package ui

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"datasweep/app"
	"datasweep/domain/clean"
	"datasweep/domain/core"
	"datasweep/ports"
)

const previewRows = 5

// handleIndex renders the upload form with the current upload list
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title":     "Upload",
		"Files":     a.store.List(),
		"MaxFileMB": a.cfg.Upload.MaxFileMB,
		"MaxFiles":  a.cfg.Upload.MaxFiles,
		"TTL":       a.cfg.Upload.TTL,
	}
	a.renderTemplate(w, "index.html", data)
}

// handleUpload stores the posted files. Each file is validated on its
// own; a rejected file never blocks the rest of the batch.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxFileBytes := int64(a.cfg.Upload.MaxFileMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxFileBytes*int64(a.cfg.Upload.MaxFiles)+(1<<20))

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		a.renderError(w, http.StatusBadRequest, "Upload failed", fmt.Sprintf("Could not read the upload: %v", err))
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		a.renderError(w, http.StatusBadRequest, "Upload failed", "No files were included in the upload")
		return
	}

	var uploadErrors []string
	stored := 0
	for _, header := range headers {
		if err := a.storeUpload(header, maxFileBytes); err != nil {
			log.Printf("[Upload] %s rejected: %v", header.Filename, err)
			uploadErrors = append(uploadErrors, fmt.Sprintf("%s: %v", header.Filename, err))
			continue
		}
		stored++
	}

	if stored == 0 {
		a.renderError(w, http.StatusBadRequest, "Upload failed", strings.Join(uploadErrors, "; "))
		return
	}
	if len(uploadErrors) > 0 {
		data := map[string]interface{}{
			"Title":  "Files",
			"Files":  a.store.List(),
			"Errors": uploadErrors,
		}
		a.renderTemplate(w, "files.html", data)
		return
	}
	http.Redirect(w, r, "/files", http.StatusSeeOther)
}

// storeUpload validates one posted file and puts it in the store
func (a *App) storeUpload(header *multipart.FileHeader, maxFileBytes int64) error {
	if header.Size > maxFileBytes {
		return fmt.Errorf("file size (%.1f MB) exceeds the %d MB limit",
			float64(header.Size)/(1024*1024), a.cfg.Upload.MaxFileMB)
	}

	format, err := ports.ParseFormat(filepath.Ext(header.Filename))
	if err != nil {
		return err
	}

	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("could not open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("could not read upload: %w", err)
	}

	_, err = a.store.Put(header.Filename, format, data)
	return err
}

// handleFiles renders the uploaded-file list
func (a *App) handleFiles(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title": "Files",
		"Files": a.store.List(),
	}
	a.renderTemplate(w, "files.html", data)
}

// handleFileDetail renders one upload's info panel, head preview, and
// the convert and summary forms.
func (a *App) handleFileDetail(w http.ResponseWriter, r *http.Request) {
	f, ok := a.storedFile(w, r)
	if !ok {
		return
	}

	t, err := a.pipeline.Load(f.Data, f.Format)
	if err != nil {
		a.renderError(w, http.StatusUnprocessableEntity, "Could not parse "+f.Name, err.Error())
		return
	}

	type columnView struct {
		Name    string
		Kind    string
		Missing int
	}
	columns := make([]columnView, 0, t.NumColumns())
	for _, col := range t.Columns {
		columns = append(columns, columnView{
			Name:    col.Name,
			Kind:    string(col.Kind),
			Missing: col.MissingCount(),
		})
	}

	n := t.NumRows()
	if n > previewRows {
		n = previewRows
	}
	preview := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		row := make([]string, 0, t.NumColumns())
		for _, cell := range t.Row(i) {
			row = append(row, cell.String())
		}
		preview = append(preview, row)
	}

	data := map[string]interface{}{
		"Title":          f.Name,
		"File":           f,
		"Rows":           t.NumRows(),
		"Cols":           t.NumColumns(),
		"Names":          t.Names(),
		"Columns":        columns,
		"Preview":        preview,
		"Truncated":      t.NumRows() > previewRows,
		"NumericColumns": t.NumericColumnNames(),
	}
	a.renderTemplate(w, "file_detail.html", data)
}

// handleConvert runs the pipeline with the submitted options and
// streams the converted file as a download.
func (a *App) handleConvert(w http.ResponseWriter, r *http.Request) {
	f, ok := a.storedFile(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		a.renderError(w, http.StatusBadRequest, "Invalid form", err.Error())
		return
	}

	target, err := ports.ParseFormat(r.FormValue("target"))
	if err != nil {
		a.renderError(w, http.StatusBadRequest, "Unsupported target format", err.Error())
		return
	}

	req := cleanRequestFromForm(r)
	job := app.FileJob{
		Name:    f.Name,
		Data:    f.Data,
		Format:  f.Format,
		Clean:   req,
		Columns: selectedColumns(r, req.StandardizeNames),
		Target:  target,
	}

	res := a.pipeline.Run(job)
	if res.Err != nil {
		a.renderError(w, statusForPipelineError(res.Err),
			fmt.Sprintf("Conversion failed during %s", res.Stage), res.Err.Error())
		return
	}

	w.Header().Set("Content-Type", res.Output.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Output.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Output.Data)))
	if _, err := w.Write(res.Output.Data); err != nil {
		log.Printf("[Convert] writing %s: %v", res.Output.Filename, err)
	}
}

// handleSummary renders the numeric summary of the cleaned and
// projected table: profiles, correlation matrix, histogram, and a
// pair scatter.
func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	f, ok := a.storedFile(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		a.renderError(w, http.StatusBadRequest, "Invalid form", err.Error())
		return
	}

	t, err := a.pipeline.Load(f.Data, f.Format)
	if err != nil {
		a.renderError(w, http.StatusUnprocessableEntity, "Could not parse "+f.Name, err.Error())
		return
	}

	req := cleanRequestFromForm(r)
	t, err = a.pipeline.Clean(t, req)
	if err != nil {
		a.renderError(w, statusForPipelineError(err), "Cleaning failed", err.Error())
		return
	}

	columns := selectedColumns(r, req.StandardizeNames)
	if columns != nil {
		t, err = a.pipeline.Project(t, columns)
		if err != nil {
			a.renderError(w, statusForPipelineError(err), "Column selection failed", err.Error())
			return
		}
	}

	summarizer := a.pipeline.Summarizer()

	var note string
	var matrix *MatrixView
	var top []RelationshipView
	m, err := summarizer.Correlation(t)
	switch {
	case err == nil:
		matrix = newMatrixView(m)
		top = topRelationships(m, 8)
	case core.IsSoft(err):
		note = "Correlation needs at least two numeric columns; this table has fewer. Profiles below still cover what is numeric."
	default:
		a.renderError(w, statusForPipelineError(err), "Summary failed", err.Error())
		return
	}

	numeric := t.NumericColumnNames()

	// Chart picks were rendered from the original header, so they
	// track the same renaming the cleaning step applied.
	pick := func(key string) string {
		v := r.FormValue(key)
		if v != "" && req.StandardizeNames {
			v = clean.StandardName(v)
		}
		return v
	}

	var hist *HistView
	histColumn := firstNonEmpty(pick("hist_column"), firstOrEmpty(numeric))
	if histColumn != "" {
		h, err := summarizer.Histogram(t, histColumn, formInt(r, "bins", 10))
		if err != nil {
			a.renderError(w, statusForPipelineError(err), "Histogram failed", err.Error())
			return
		}
		hist = newHistView(h)
	}

	var scatter *ScatterView
	pairX := firstNonEmpty(pick("pair_x"), firstOrEmpty(numeric))
	pairY := pick("pair_y")
	if pairY == "" && len(numeric) > 1 {
		pairY = numeric[1]
	}
	if pairX != "" && pairY != "" && pairX != pairY {
		series, err := summarizer.Pair(t, pairX, pairY)
		if err != nil {
			a.renderError(w, statusForPipelineError(err), "Pair extraction failed", err.Error())
			return
		}
		scatter = newScatterView(series)
	}

	data := map[string]interface{}{
		"Title":     "Summary of " + f.Name,
		"File":      f,
		"Rows":      t.NumRows(),
		"Cols":      t.NumColumns(),
		"Projected": columns != nil,
		"Note":      note,
		"Profiles":  summarizer.Profile(t),
		"Matrix":    matrix,
		"Top":       top,
		"Hist":      hist,
		"Scatter":   scatter,
	}
	a.renderTemplate(w, "summary.html", data)
}

// storedFile resolves the {id} route parameter to a live upload,
// rendering the error page itself when it cannot.
func (a *App) storedFile(w http.ResponseWriter, r *http.Request) (*StoredFile, bool) {
	id, err := core.ParseUploadID(chi.URLParam(r, "id"))
	if err != nil {
		a.renderError(w, http.StatusBadRequest, "Invalid file ID", err.Error())
		return nil, false
	}
	f, ok := a.store.Get(id)
	if !ok {
		a.renderError(w, http.StatusNotFound, "File not found",
			fmt.Sprintf("The upload does not exist or has expired; uploads are kept for %s.", a.cfg.Upload.TTL))
		return nil, false
	}
	return f, true
}

// cleanRequestFromForm reads the cleaning checkboxes and drop targets
func cleanRequestFromForm(r *http.Request) clean.Request {
	req := clean.Request{
		RemoveDuplicates: r.FormValue("remove_duplicates") != "",
		FillMissing:      r.FormValue("fill_missing") != "",
		StandardizeNames: r.FormValue("standardize_names") != "",
		DropColumns:      trimmedValues(r.Form["drop_columns"]),
	}
	// The forms show original column names, but removal runs after
	// standardization, so the targets must be the standardized names.
	if req.StandardizeNames {
		for i, name := range req.DropColumns {
			req.DropColumns[i] = clean.StandardName(name)
		}
	}
	return req
}

// selectedColumns reads the projection picks; nil means keep all
func selectedColumns(r *http.Request, standardized bool) []string {
	columns := trimmedValues(r.Form["columns"])
	if standardized {
		for i, name := range columns {
			columns[i] = clean.StandardName(name)
		}
	}
	return columns
}

// trimmedValues trims the submitted values and drops empty ones,
// returning nil when nothing remains.
func trimmedValues(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// statusForPipelineError maps pipeline failures to HTTP statuses:
// input and column problems are the caller's, everything else is ours.
func statusForPipelineError(err error) int {
	if core.IsInputError(err) || core.IsColumnError(err) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func formInt(r *http.Request, key string, fallback int) int {
	v := r.FormValue(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
