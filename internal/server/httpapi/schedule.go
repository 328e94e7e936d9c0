package httpapi

import (
	"errors"
	"net/http"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/dgitonga/qrollcall/internal/schemas"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleAddSchedule(c *gin.Context) {
	record, ok := s.decodeRecord(c, "scheduleSchema")
	if !ok {
		return
	}

	err := s.schedules.Add(c.Request.Context(),
		schemas.String(record, "courseCode"),
		schemas.String(record, "unitCode"),
		schemas.String(record, "scheduledDate"),
		schemas.String(record, "scheduledTime"),
	)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			s.reject(c, http.StatusBadRequest, "Unit not found")
		case errors.Is(err, common.ErrAlreadyExists):
			s.reject(c, http.StatusBadRequest,
				"Schedule already found for this unit at exact date and time. Remove current schedule to add a new one.")
		default:
			s.writeError(c, err)
		}
		return
	}

	s.respond(c, http.StatusCreated, gin.H{"message": "Schedule added successfully"})
}

func (s *Server) handleListSchedules(c *gin.Context) {
	record, ok := s.decodeRecord(c, "commonSchema")
	if !ok {
		return
	}

	list, err := s.schedules.ListByCourse(c.Request.Context(), schemas.String(record, "courseCode"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.reject(c, http.StatusNotFound, "Schedules not found")
			return
		}
		s.writeError(c, err)
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, sess := range list {
		out = append(out, gin.H{
			"courseCode":    sess.CourseCode,
			"unitCode":      sess.UnitCode,
			"scheduledDate": sess.ScheduledDate,
			"scheduledTime": sess.ScheduledTime,
		})
	}
	s.respond(c, http.StatusOK, gin.H{"schedules": out})
}

func (s *Server) handleDeleteSchedule(c *gin.Context) {
	record, ok := s.decodeRecord(c, "deleteScheduleSchema")
	if !ok {
		return
	}

	err := s.schedules.DeleteByUnit(c.Request.Context(), schemas.String(record, "unitCode"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.reject(c, http.StatusNotFound, "Schedule not found")
			return
		}
		s.writeError(c, err)
		return
	}

	s.respond(c, http.StatusOK, gin.H{"message": "Schedule removed successfully"})
}
