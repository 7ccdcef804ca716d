package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/markstyle-ai/markstyle/app/logic/v1"
	"github.com/markstyle-ai/markstyle/app/response"
	"github.com/markstyle-ai/markstyle/app/store"
	"github.com/markstyle-ai/markstyle/pkg/types"
	"github.com/markstyle-ai/markstyle/pkg/utils"
)

type ListRulesRequest struct {
	Type string `json:"type" form:"type"`
}

func (s *HttpSrv) ListRules(c *gin.Context) {
	var req ListRulesRequest

	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	rules, err := v1.NewRuleLogic(c.Request.Context(), s.Core).ListRules(req.Type)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, rules)
}

type CreateRulesRequest struct {
	Rules []types.RuleBody `json:"rules" binding:"required"`
}

type CreateRulesResponse struct {
	Outcomes []v1.SaveOutcome `json:"outcomes"`
}

func (s *HttpSrv) CreateRules(c *gin.Context) {
	var req CreateRulesRequest

	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	outcomes, err := v1.NewRuleLogic(c.Request.Context(), s.Core).CreateRules(req.Rules)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, CreateRulesResponse{
		Outcomes: outcomes,
	})
}

type UpdateRuleRequest struct {
	Type        *string   `json:"type"`
	Name        *string   `json:"name"`
	Pattern     *string   `json:"pattern"`
	Description *string   `json:"description"`
	Examples    *[]string `json:"examples"`
}

func (s *HttpSrv) UpdateRule(c *gin.Context) {
	var req UpdateRuleRequest

	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	id, _ := c.Params.Get("id")
	rule, err := v1.NewRuleLogic(c.Request.Context(), s.Core).UpdateRule(id, store.UpdateRuleFields{
		Type:        req.Type,
		Name:        req.Name,
		Pattern:     req.Pattern,
		Description: req.Description,
		Examples:    req.Examples,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, rule)
}

func (s *HttpSrv) DeleteRule(c *gin.Context) {
	id, _ := c.Params.Get("id")
	if err := v1.NewRuleLogic(c.Request.Context(), s.Core).DeleteRule(id); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}
