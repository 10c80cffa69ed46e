package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"time"

	"frontend/internal/domain"
	"frontend/internal/domain/models"
	"frontend/internal/utils"

	"github.com/disintegration/imaging"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	StyleDraw   = "draw"
	StyleRaster = "raster"
)

// TicketRenderer turns a confirmed booking into a downloadable PDF.
type TicketRenderer interface {
	Render(t models.TicketData) ([]byte, string, error)
}

// DocsService produces the ticket and receipt PDFs for the ticket page.
type DocsService struct {
	RequestID string
	Loader    func(ctx context.Context) (models.TicketData, error)
}

// Renderer picks the renderer for the style query value; blank means draw.
func (s DocsService) Renderer(style string) (TicketRenderer, error) {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "", StyleDraw:
		return DrawRenderer{}, nil
	case StyleRaster:
		return RasterRenderer{}, nil
	default:
		return nil, domain.ValidationError{Field: "style", Msg: "must be draw or raster"}
	}
}

func (s DocsService) GenerateTicket(ctx context.Context, style string) ([]byte, string, error) {
	r, err := s.Renderer(style)
	if err != nil {
		return nil, "", err
	}
	t, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_ticket", fmt.Sprintf("booking_no=%s style=%s", t.BookingData.BookingNo, utils.Fallback(style, StyleDraw)))
	return r.Render(t)
}

func (s DocsService) GenerateReceipt(ctx context.Context) ([]byte, string, error) {
	t, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", "booking_no="+t.BookingData.BookingNo)
	return buildReceiptPDF(t, time.Now())
}

func (s DocsService) load(ctx context.Context) (models.TicketData, error) {
	if s.Loader == nil {
		return models.TicketData{}, domain.InternalError{Msg: "ticket loader is not configured"}
	}
	return s.Loader(ctx)
}

// TicketFilename is TICKET_<bookingNo>.pdf.
func TicketFilename(t models.TicketData) string {
	return fmt.Sprintf("TICKET_%s.pdf", utils.SafeFilenamePart(t.BookingData.BookingNo))
}

func qrPayload(t models.TicketData) string {
	b := t.BookingData
	return fmt.Sprintf("BOOKING:%s;PNR:%s;FLIGHT:%d;DATE:%s", b.BookingNo, b.PNR, b.ID, utils.DateOnly(b.SelectedDate))
}

func statusLine(b models.BookingData) string {
	payment := "PENDING"
	if b.IsPaid {
		payment = "PAID"
	}
	booking := utils.Fallback(b.BookingStatus, "PENDING")
	if b.IsConfirmed {
		booking = "CONFIRMED"
	}
	return fmt.Sprintf("Booking: %s   Payment: %s", strings.ToUpper(booking), payment)
}

func travelerName(t models.TravelerDetail) string {
	return strings.TrimSpace(t.Title + " " + t.FullName)
}

// DrawRenderer lays the ticket out with gofpdf primitives.
type DrawRenderer struct{}

func (DrawRenderer) Render(t models.TicketData) ([]byte, string, error) {
	b := t.BookingData
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket "+b.BookingNo, false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	const left, width = 15.0, 180.0
	y := 15.0

	pdf.SetFillColor(20, 60, 120)
	pdf.Rect(left, y, width, 22, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(left+5, y+4)
	pdf.Cell(100, 8, "E-TICKET")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(left+5, y+13)
	pdf.Cell(100, 6, "Booking No: "+utils.Fallback(b.BookingNo, "-"))
	pdf.SetXY(left+110, y+13)
	pdf.Cell(65, 6, "PNR: "+utils.Fallback(b.PNR, "-"))
	y += 30

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(left, y)
	pdf.Cell(width, 10, fmt.Sprintf("%s  ->  %s", utils.Fallback(b.Departure, "-"), utils.Fallback(b.Arrival, "-")))
	y += 12

	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Date", utils.DisplayDate(utils.Fallback(b.SelectedDate, "-"))},
		{"Departure", utils.Fallback(utils.TimeHM(b.DepartureTime), "-")},
		{"Arrival", utils.Fallback(utils.TimeHM(b.ArrivalTime), "-")},
		{"Flight ref", fmt.Sprintf("#%d", b.ID)},
		{"Seats", utils.Fallback(strings.Join(b.SelectedSeats, ", "), "-")},
		{"Total", utils.FormatINR(b.Amount())},
	}
	for _, r := range rows {
		pdf.SetXY(left, y)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(35, 7, r[0])
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(90, 7, r[1])
		y += 7
	}

	qr, err := qrcode.Encode(qrPayload(t), qrcode.Medium, 256)
	if err != nil {
		return nil, "", err
	}
	pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qr))
	pdf.ImageOptions("qr", left+width-45, y-45, 42, 42, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	y += 6

	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(left, y, left+width, y)
	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(left, y)
	pdf.Cell(width, 7, fmt.Sprintf("Travelers (%d)", len(t.TravelerDetails)))
	y += 9

	pdf.SetFillColor(235, 240, 248)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(left, y)
	for _, h := range []struct {
		label string
		w     float64
	}{{"#", 10}, {"Name", 65}, {"Date of birth", 35}, {"Phone", 30}, {"Seat", 40}} {
		pdf.CellFormat(h.w, 7, h.label, "1", 0, "L", true, 0, "")
	}
	y += 7

	pdf.SetFont("Helvetica", "", 10)
	for i, tr := range t.TravelerDetails {
		if y > 260 {
			pdf.AddPage()
			y = 15
		}
		seat := "-"
		if i < len(b.SelectedSeats) {
			seat = b.SelectedSeats[i]
		}
		pdf.SetXY(left, y)
		pdf.CellFormat(10, 7, fmt.Sprintf("%d", i+1), "1", 0, "L", false, 0, "")
		pdf.CellFormat(65, 7, utils.Fallback(travelerName(tr), "-"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, utils.Fallback(tr.DateOfBirth, "-"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, utils.Fallback(tr.Phone, "-"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, seat, "1", 0, "L", false, 0, "")
		y += 7
	}
	y += 6

	pdf.SetXY(left, y)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(width, 7, statusLine(b))
	y += 10

	pdf.SetXY(left, y)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(width, 5, "Please carry a valid photo ID. Check-in closes 45 minutes before departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), TicketFilename(t), nil
}

// RasterRenderer paints the ticket card as an image and places it on a PDF page.
type RasterRenderer struct{}

const (
	cardW = 600
	cardH = 400
)

var (
	ink    = color.NRGBA{R: 20, G: 20, B: 20, A: 255}
	muted  = color.NRGBA{R: 110, G: 110, B: 110, A: 255}
	banner = color.NRGBA{R: 20, G: 60, B: 120, A: 255}
)

func (RasterRenderer) Render(t models.TicketData) ([]byte, string, error) {
	card, err := paintTicketCard(t)
	if err != nil {
		return nil, "", err
	}
	// basicfont is a 7x13 bitmap font, scale it up without smoothing
	card = imaging.Resize(card, cardW*3, 0, imaging.NearestNeighbor)

	var png bytes.Buffer
	if err := imaging.Encode(&png, card, imaging.PNG); err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket "+t.BookingData.BookingNo, false)
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("card", opts, &png)
	pdf.ImageOptions("card", 15, 15, 180, 0, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), TicketFilename(t), nil
}

func paintTicketCard(t models.TicketData) (*image.NRGBA, error) {
	b := t.BookingData
	card := imaging.New(cardW, cardH, color.White)
	draw.Draw(card, image.Rect(0, 0, cardW, 40), image.NewUniform(banner), image.Point{}, draw.Src)
	draw.Draw(card, image.Rect(0, cardH-4, cardW, cardH), image.NewUniform(banner), image.Point{}, draw.Src)

	text(card, 16, 25, color.White, "E-TICKET")
	text(card, 300, 25, color.White, "BOOKING "+utils.Fallback(b.BookingNo, "-"))

	y := 70
	text(card, 16, y, ink, fmt.Sprintf("%s  ->  %s", utils.Fallback(b.Departure, "-"), utils.Fallback(b.Arrival, "-")))
	y += 22
	for _, line := range []string{
		"PNR        " + utils.Fallback(b.PNR, "-"),
		"DATE       " + utils.DisplayDate(utils.Fallback(b.SelectedDate, "-")),
		"DEPARTS    " + utils.Fallback(utils.TimeHM(b.DepartureTime), "-"),
		"ARRIVES    " + utils.Fallback(utils.TimeHM(b.ArrivalTime), "-"),
		"TOTAL      " + utils.FormatINR(b.Amount()),
	} {
		text(card, 16, y, ink, line)
		y += 18
	}

	y += 8
	text(card, 16, y, muted, fmt.Sprintf("TRAVELERS (%d)", len(t.TravelerDetails)))
	y += 18
	for i, tr := range t.TravelerDetails {
		if y > cardH-40 {
			text(card, 16, y, muted, fmt.Sprintf("... and %d more", len(t.TravelerDetails)-i))
			break
		}
		seat := ""
		if i < len(b.SelectedSeats) {
			seat = "  SEAT " + b.SelectedSeats[i]
		}
		text(card, 16, y, ink, fmt.Sprintf("%d. %s%s", i+1, utils.Fallback(travelerName(tr), "-"), seat))
		y += 16
	}
	text(card, 16, cardH-16, muted, statusLine(b))

	q, err := qrcode.New(qrPayload(t), qrcode.Medium)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	return imaging.Overlay(card, q.Image(160), image.Pt(cardW-180, 60), 1.0), nil
}

func text(dst draw.Image, x, y int, c color.Color, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func buildReceiptPDF(t models.TicketData, issued time.Time) ([]byte, string, error) {
	b := t.BookingData
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Receipt No : RCPT-"+utils.SafeFilenamePart(b.BookingNo))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued     : "+issued.Format("2006-01-02 15:04"))
	pdf.Ln(7)
	if t.Payment != nil && t.Payment.TransactionID != "" {
		pdf.Cell(0, 7, "Transaction: "+t.Payment.TransactionID)
		pdf.Ln(7)
	}
	pdf.Ln(3)

	if len(t.TravelerDetails) > 0 {
		lead := t.TravelerDetails[0]
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Billed to:")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 7, travelerName(lead))
		pdf.Ln(7)
		pdf.Cell(0, 7, utils.Fallback(lead.Email, "-"))
		pdf.Ln(7)
		if lead.GSTNumber != "" {
			pdf.Cell(0, 7, "GSTIN: "+lead.GSTNumber)
			pdf.Ln(7)
		}
		pdf.Ln(3)
	}

	desc := fmt.Sprintf("Flight %s -> %s on %s, %d traveler(s)",
		utils.Fallback(b.Departure, "-"), utils.Fallback(b.Arrival, "-"),
		utils.DisplayDate(utils.Fallback(b.SelectedDate, "-")), len(t.TravelerDetails))
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, desc, "", "", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatINR(b.Amount()))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, statusLine(b))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("RECEIPT_%s.pdf", utils.SafeFilenamePart(b.BookingNo)), nil
}
