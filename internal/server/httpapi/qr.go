package httpapi

import (
	"net/http"

	"github.com/dgitonga/qrollcall/internal/schemas"
	"github.com/dgitonga/qrollcall/internal/server/models"
	"github.com/dgitonga/qrollcall/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleIssueQR(c *gin.Context) {
	record, ok := s.decodeRecord(c, "qrSchema")
	if !ok {
		return
	}

	raw, err := s.attendance.IssueToken(c.Request.Context(), services.IssueParams{
		CourseCode: schemas.String(record, "courseCode"),
		UnitCode:   schemas.String(record, "unitCode"),
		Lecturer:   schemas.String(record, "lecturer"),
		Date:       schemas.String(record, "date"),
		Time:       schemas.String(record, "time"),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.respond(c, http.StatusCreated, gin.H{
		"message": "QR Uploaded",
		"qr":      raw,
	})
}

func (s *Server) handleRedeemQR(c *gin.Context) {
	record, ok := s.decodeRecord(c, "redeemSchema")
	if !ok {
		return
	}

	err := s.attendance.Redeem(c.Request.Context(),
		schemas.String(record, "qr"),
		schemas.String(record, "regNo"),
	)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.respond(c, http.StatusCreated, gin.H{"message": "Attendance Confirmed"})
}

func (s *Server) handleAttendanceList(c *gin.Context) {
	record, ok := s.decodeRecord(c, "ledgerSchema")
	if !ok {
		return
	}

	entries, err := s.attendance.Ledger(c.Request.Context(), models.SessionKey{
		UnitCode:      schemas.String(record, "unitCode"),
		ScheduledDate: schemas.String(record, "scheduledDate"),
		ScheduledTime: schemas.String(record, "scheduledTime"),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	list := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		list = append(list, gin.H{
			"regNo":    e.RegNo,
			"markedAt": e.MarkedAt,
		})
	}
	s.respond(c, http.StatusOK, gin.H{"attendance": list})
}
