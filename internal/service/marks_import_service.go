package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/successpath-portal/internal/dto"
	"github.com/noah-isme/successpath-portal/internal/observability"
	"github.com/noah-isme/successpath-portal/internal/validation"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	// ErrImportTooLarge indicates the sheet exceeded the configured limit.
	ErrImportTooLarge = errors.New("marks sheet exceeds maximum allowed size")
	// ErrImportTypeNotAllowed indicates the upload is not an xlsx workbook.
	ErrImportTypeNotAllowed = errors.New("marks sheet must be an .xlsx workbook")
	// ErrImportEmpty indicates the workbook holds no data rows.
	ErrImportEmpty = errors.New("marks sheet has no rows")
)

// Column order of the bulk marks sheet. The first row is a header.
const (
	colStudentID = iota
	colStudentName
	colClass
	colExamType
	colExamName
	colExamDate
	colSubject
	colMarksObtained
	colTotalMarks
	colRemarks
)

// ImportColumns are the header labels written into the template sheet.
var ImportColumns = []string{
	"Student ID", "Student Name", "Class", "Exam Type", "Exam Name",
	"Exam Date", "Subject", "Marks Obtained", "Total Marks", "Remarks",
}

// MarksUploader submits accepted rows in one request.
type MarksUploader interface {
	BulkUploadMarks(ctx context.Context, token string, entries []dto.MarksPayload) (dto.BulkMarksResponse, error)
}

// MarksImportService turns an uploaded workbook into a bulk marks upload.
type MarksImportService interface {
	Import(ctx context.Context, token string, file io.Reader) (dto.MarksImportResult, error)
	Template() (*bytes.Buffer, error)
}

type marksImportService struct {
	backend  MarksUploader
	payloads *validation.Payloads
	maxSize  int64
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// NewMarksImportService constructs the importer. maxSizeMB defaults to 5.
func NewMarksImportService(backend MarksUploader, payloads *validation.Payloads, maxSizeMB int, logger zerolog.Logger) MarksImportService {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &marksImportService{
		backend:  backend,
		payloads: payloads,
		maxSize:  int64(maxSizeMB) * 1024 * 1024,
		logger:   logger.With().Str("component", "marks_import_service").Logger(),
		tracer:   otel.Tracer("github.com/noah-isme/successpath-portal/internal/service/marks_import"),
	}
}

func (s *marksImportService) Import(ctx context.Context, token string, file io.Reader) (dto.MarksImportResult, error) {
	ctx, span := s.tracer.Start(ctx, "marks.import")
	defer span.End()

	fail := func(err error, status string) (dto.MarksImportResult, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
		return dto.MarksImportResult{}, err
	}

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(file, s.maxSize+1)); err != nil {
		return fail(err, "read failed")
	}
	if int64(buf.Len()) > s.maxSize {
		return fail(ErrImportTooLarge, "payload too large")
	}
	if !isWorkbook(buf.Bytes()) {
		return fail(ErrImportTypeNotAllowed, "type not allowed")
	}

	book, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return fail(ErrImportTypeNotAllowed, "open failed")
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return fail(ErrImportEmpty, "no sheets")
	}
	rows, err := book.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return fail(err, "read rows failed")
	}

	result := dto.MarksImportResult{Rejected: []dto.ImportRowError{}}
	var accepted []dto.MarksPayload
	for index, row := range rows {
		if index == 0 || blankRow(row) {
			continue
		}
		number := index + 1

		form := marksFormFromRow(row)
		if res := form.Validate(); !res.OK() {
			result.Rejected = append(result.Rejected, dto.ImportRowError{Row: number, Message: res.Message()})
			continue
		}
		accepted = append(accepted, form.Payload())
	}
	result.Accepted = len(accepted)
	span.SetAttributes(
		attribute.Int("import.accepted", result.Accepted),
		attribute.Int("import.rejected", len(result.Rejected)),
	)
	observability.MarksImportRows().WithLabelValues("accepted").Add(float64(result.Accepted))
	observability.MarksImportRows().WithLabelValues("rejected").Add(float64(len(result.Rejected)))

	if len(accepted) == 0 {
		if len(result.Rejected) == 0 {
			return fail(ErrImportEmpty, "no rows")
		}
		return result, nil
	}

	if err := s.payloads.Check(dto.BulkMarksPayload{Marks: accepted}); err != nil {
		return fail(err, "validation failed")
	}

	resp, err := s.backend.BulkUploadMarks(ctx, token, accepted)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload failed")
		return dto.MarksImportResult{}, actionFailed("bulk_upload_marks", "Failed to upload marks", err)
	}
	result.Inserted = resp.Inserted
	if result.Inserted == 0 && resp.Success {
		result.Inserted = len(accepted)
	}

	s.logger.Info().
		Int("accepted", result.Accepted).
		Int("rejected", len(result.Rejected)).
		Int("inserted", result.Inserted).
		Msg("marks sheet imported")
	return result, nil
}

// Template builds an empty workbook carrying only the header row.
func (s *marksImportService) Template() (*bytes.Buffer, error) {
	book := excelize.NewFile()
	defer book.Close()

	sheet := book.GetSheetName(0)
	header := make([]interface{}, len(ImportColumns))
	for i, column := range ImportColumns {
		header[i] = column
	}
	if err := book.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	return book.WriteToBuffer()
}

// isWorkbook walks the detected type up to its zip container so that both the
// specific xlsx signature and a generic zip archive are considered.
func isWorkbook(data []byte) bool {
	for mime := mimetype.Detect(data); mime != nil; mime = mime.Parent() {
		if mime.Is(xlsxMIME) || mime.Is("application/zip") {
			return true
		}
	}
	return false
}

func marksFormFromRow(row []string) validation.MarksForm {
	return validation.MarksForm{
		StudentID:     cell(row, colStudentID),
		StudentName:   cell(row, colStudentName),
		Class:         cell(row, colClass),
		ExamType:      cell(row, colExamType),
		ExamName:      cell(row, colExamName),
		ExamDate:      examDate(cell(row, colExamDate)),
		Subject:       cell(row, colSubject),
		MarksObtained: validation.NumberField(cell(row, colMarksObtained)),
		TotalMarks:    validation.NumberField(cell(row, colTotalMarks)),
		Remarks:       cell(row, colRemarks),
	}
}

func cell(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

// examDate converts a spreadsheet date serial into an ISO date. Text values are
// passed through untouched.
func examDate(value string) string {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	date, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return value
	}
	return date.Format("2006-01-02")
}

func blankRow(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
