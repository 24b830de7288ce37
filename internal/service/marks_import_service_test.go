package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/successpath-portal/internal/backend"
	"github.com/noah-isme/successpath-portal/internal/dto"
	"github.com/noah-isme/successpath-portal/internal/validation"
)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	book := excelize.NewFile()
	defer book.Close()

	sheet := book.GetSheetName(0)
	header := make([]interface{}, len(ImportColumns))
	for i, column := range ImportColumns {
		header[i] = column
	}
	require.NoError(t, book.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		row := row
		require.NoError(t, book.SetSheetRow(sheet, cellName, &row))
	}

	buf, err := book.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestMarksImportAcceptsValidRowsAndReportsOthers(t *testing.T) {
	stub := newBackendStub()
	stub.bulkResp = dto.BulkMarksResponse{Success: true, Inserted: 2}
	svc := NewMarksImportService(stub, validation.NewPayloads(), 1, testLogger())

	file := workbook(t,
		[]interface{}{"s1", "Asha", "10th", "Mid Term", "Mid Term 2024", "2024-09-10", "Physics", 45, 50, ""},
		[]interface{}{"s2", "Ravi", "10th", "Mid Term", "Mid Term 2024", "2024-09-10", "Physics", 55, 50, ""},
		[]interface{}{},
		[]interface{}{"s3", "Mira", "10th", "Final", "Finals", "2024-12-01", "Chemistry", "38", "40", "Good"},
		[]interface{}{"s4", "Dev", "10th", "Final", "Finals", "2024-12-01", "Astrology", 10, 40, ""},
	)

	result, err := svc.Import(context.Background(), "tok", file)
	require.NoError(t, err)
	require.Equal(t, 2, result.Accepted)
	require.Equal(t, 2, result.Inserted)
	require.Equal(t, []dto.ImportRowError{
		{Row: 3, Message: validation.MsgMarksExceedTotal},
		{Row: 6, Message: validation.MsgInvalidSubject},
	}, result.Rejected)

	require.Len(t, stub.bulk, 2)
	require.Equal(t, "s1", stub.bulk[0].StudentID)
	require.Equal(t, 45.0, stub.bulk[0].MarksObtained)
	require.Equal(t, "Good", stub.bulk[1].Remarks)
}

func TestMarksImportNothingValidSkipsBackend(t *testing.T) {
	stub := newBackendStub()
	svc := NewMarksImportService(stub, validation.NewPayloads(), 1, testLogger())

	file := workbook(t, []interface{}{"s1", "Asha", "10th", "Quiz", "Quiz 1", "2024-09-10", "Physics", 5, 10, ""})

	result, err := svc.Import(context.Background(), "tok", file)
	require.NoError(t, err)
	require.Zero(t, result.Accepted)
	require.Len(t, result.Rejected, 1)
	require.Zero(t, stub.called("BulkUploadMarks"))
}

func TestMarksImportRejectsEmptySheet(t *testing.T) {
	svc := NewMarksImportService(newBackendStub(), validation.NewPayloads(), 1, testLogger())

	_, err := svc.Import(context.Background(), "tok", workbook(t))
	require.ErrorIs(t, err, ErrImportEmpty)
}

func TestMarksImportRejectsNonWorkbook(t *testing.T) {
	svc := NewMarksImportService(newBackendStub(), validation.NewPayloads(), 1, testLogger())

	_, err := svc.Import(context.Background(), "tok", strings.NewReader("studentId,subject\ns1,Physics\n"))
	require.ErrorIs(t, err, ErrImportTypeNotAllowed)
}

func TestMarksImportRejectsOversizedUpload(t *testing.T) {
	svc := NewMarksImportService(newBackendStub(), validation.NewPayloads(), 1, testLogger())

	_, err := svc.Import(context.Background(), "tok", bytes.NewReader(make([]byte, 1024*1024+1)))
	require.ErrorIs(t, err, ErrImportTooLarge)
}

func TestMarksImportBackendFailure(t *testing.T) {
	stub := newBackendStub()
	stub.errs["BulkUploadMarks"] = backend.ErrUnavailable
	svc := NewMarksImportService(stub, validation.NewPayloads(), 1, testLogger())

	file := workbook(t, []interface{}{"s1", "Asha", "10th", "Mid Term", "Mid Term 2024", "2024-09-10", "Physics", 45, 50, ""})
	_, err := svc.Import(context.Background(), "tok", file)
	require.Equal(t, "Failed to upload marks", backend.MessageOf(err, ""))
}

func TestMarksImportTemplateHasHeader(t *testing.T) {
	svc := NewMarksImportService(newBackendStub(), validation.NewPayloads(), 1, testLogger())

	buf, err := svc.Template()
	require.NoError(t, err)

	book, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(book.GetSheetName(0))
	require.NoError(t, err)
	require.Equal(t, [][]string{ImportColumns}, rows)
}

func TestExamDateConvertsSerials(t *testing.T) {
	require.Equal(t, "2024-09-10", examDate("45545"))
	require.Equal(t, "10/09/2024", examDate("10/09/2024"))
}
