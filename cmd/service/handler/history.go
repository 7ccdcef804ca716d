package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/markstyle-ai/markstyle/app/logic/v1"
	"github.com/markstyle-ai/markstyle/app/response"
)

func (s *HttpSrv) ListHistory(c *gin.Context) {
	records, err := v1.NewHistoryLogic(c.Request.Context(), s.Core).ListHistory()
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, records)
}

func (s *HttpSrv) DeleteHistory(c *gin.Context) {
	id, _ := c.Params.Get("id")
	if err := v1.NewHistoryLogic(c.Request.Context(), s.Core).DeleteHistory(id); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

func (s *HttpSrv) ClearHistory(c *gin.Context) {
	if err := v1.NewHistoryLogic(c.Request.Context(), s.Core).ClearHistory(); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}
