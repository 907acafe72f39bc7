package log

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Fiber Locals keys read by every log line of a request.
const (
	UserIDKey    = "user_id"
	RoleKey      = "role"
	ListingIDKey = "log.listing_id"
	BookingIDKey = "log.booking_id"
	SubjectIDKey = "log.subject_id"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelAudit Level = "audit"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Fields carries event-specific extras that have no typed slot in Entry.
type Fields map[string]any

// Entry is one JSON log line.
type Entry struct {
	TS        string `json:"ts"`
	Level     Level  `json:"level"`
	Action    string `json:"action,omitempty"`
	ReqID     string `json:"req_id,omitempty"`
	IP        string `json:"ip,omitempty"`
	Method    string `json:"method,omitempty"`
	Path      string `json:"path,omitempty"`
	Status    int    `json:"status,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	Role      string `json:"role,omitempty"`
	// the listing, booking or user account the request acts on
	ListingID string `json:"listing_id,omitempty"`
	BookingID string `json:"booking_id,omitempty"`
	SubjectID string `json:"subject_id,omitempty"`
	Err       string `json:"err,omitempty"`
	Fields    Fields `json:"fields,omitempty"`
}

// Listing tags the rest of the request's log lines with a listing id.
func Listing(c *fiber.Ctx, id string) { c.Locals(ListingIDKey, id) }

// Booking tags the rest of the request's log lines with a booking id.
func Booking(c *fiber.Ctx, id string) { c.Locals(BookingIDKey, id) }

// Subject tags the rest of the request's log lines with the id of the user
// account being acted on, as opposed to the caller.
func Subject(c *fiber.Ctx, id string) { c.Locals(SubjectIDKey, id) }

func local(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

func build(level Level, c *fiber.Ctx, action string, err error, fields Fields) Entry {
	e := Entry{TS: time.Now().UTC().Format(time.RFC3339), Level: level, Action: action, Fields: fields}
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		e.ReqID = local(c, "requestid")
		e.UserID = local(c, UserIDKey)
		e.Role = local(c, RoleKey)
		e.ListingID = local(c, ListingIDKey)
		e.BookingID = local(c, BookingIDKey)
		e.SubjectID = local(c, SubjectIDKey)
		if start, ok := c.Locals("start").(time.Time); ok {
			e.LatencyMs = time.Since(start).Milliseconds()
		}
	}
	if err != nil {
		e.Err = err.Error()
	}
	return e
}

func write(level Level, c *fiber.Ctx, action string, err error, fields Fields) {
	b, _ := json.Marshal(build(level, c, action, err, fields))
	log.Println(string(b))
}

func Info(c *fiber.Ctx, action string, fields Fields) { write(LevelInfo, c, action, nil, fields) }

// Audit records a state change: bookings, listings, favorites, accounts.
func Audit(c *fiber.Ctx, action string, fields Fields) { write(LevelAudit, c, action, nil, fields) }

// Security records rejected or suspicious requests.
func Security(c *fiber.Ctx, action string, fields Fields) {
	write(LevelWarn, c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields Fields) {
	write(LevelError, c, action, err, fields)
}
