package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/markstyle-ai/markstyle/app/logic/v1"
	"github.com/markstyle-ai/markstyle/app/response"
	"github.com/markstyle-ai/markstyle/pkg/utils"
)

type ExtractRulesRequest struct {
	Content    string   `json:"content" binding:"required"`
	StyleTypes []string `json:"style_types"`
}

func (s *HttpSrv) ExtractRules(c *gin.Context) {
	var req ExtractRulesRequest

	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	result, err := v1.NewExtractLogic(c.Request.Context(), s.Core).ExtractRules(req.Content, req.StyleTypes)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, result)
}

type ConvertContentRequest struct {
	Content     string   `json:"content" binding:"required"`
	RuleIDs     []string `json:"rule_ids" binding:"required"`
	TargetStyle string   `json:"target_style"`
}

func (s *HttpSrv) ConvertContent(c *gin.Context) {
	var req ConvertContentRequest

	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	result, err := v1.NewConvertLogic(c.Request.Context(), s.Core).Convert(req.Content, req.RuleIDs, req.TargetStyle)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, result)
}
