package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/dgitonga/qrollcall/internal/schemas"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleCreateUnit(c *gin.Context) {
	record, ok := s.decodeRecord(c, "unitSchema")
	if !ok {
		return
	}

	code := schemas.String(record, "unitCode")
	err := s.catalog.AddUnit(c.Request.Context(),
		schemas.String(record, "courseCode"),
		code,
		schemas.String(record, "unitTitle"),
		intValue(record, "unitYear"),
	)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			s.reject(c, http.StatusBadRequest,
				fmt.Sprintf("Course %s does not exist", schemas.String(record, "courseCode")))
		case errors.Is(err, common.ErrAlreadyExists):
			s.reject(c, http.StatusBadRequest, fmt.Sprintf("Unit %s already exists", code))
		default:
			s.writeError(c, err)
		}
		return
	}

	s.respond(c, http.StatusCreated, gin.H{"message": "Unit added successfully"})
}

func (s *Server) handleListUnits(c *gin.Context) {
	record, ok := s.decodeRecord(c, "commonSchema")
	if !ok {
		return
	}

	list, err := s.catalog.ListUnits(c.Request.Context(), schemas.String(record, "courseCode"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.reject(c, http.StatusNotFound, "Units not found")
			return
		}
		s.writeError(c, err)
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, unit := range list {
		out = append(out, gin.H{
			"courseCode": unit.CourseCode,
			"unitCode":   unit.UnitCode,
			"unitTitle":  unit.UnitTitle,
			"unitYear":   unit.UnitYear,
		})
	}
	s.respond(c, http.StatusOK, gin.H{"units": out})
}

func (s *Server) handleDeleteUnit(c *gin.Context) {
	record, ok := s.decodeRecord(c, "deleteUnitSchema")
	if !ok {
		return
	}

	code := schemas.String(record, "unitCode")
	if err := s.catalog.DeleteUnit(c.Request.Context(), code); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.reject(c, http.StatusNotFound, fmt.Sprintf("Unit %s not found", code))
			return
		}
		s.writeError(c, err)
		return
	}

	s.respond(c, http.StatusOK, gin.H{"message": "Unit removed successfully"})
}
