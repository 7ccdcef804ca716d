package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/markstyle-ai/markstyle/app/logic/v1"
	"github.com/markstyle-ai/markstyle/app/response"
	"github.com/markstyle-ai/markstyle/pkg/utils"
)

func (s *HttpSrv) ListRuleSets(c *gin.Context) {
	sets, err := v1.NewRuleSetLogic(c.Request.Context(), s.Core).ListRuleSets()
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, sets)
}

func (s *HttpSrv) GetRuleSet(c *gin.Context) {
	id, _ := c.Params.Get("id")
	set, err := v1.NewRuleSetLogic(c.Request.Context(), s.Core).GetRuleSet(id)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, set)
}

type CreateRuleSetRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	RuleIDs     []string `json:"rule_ids"`
}

func (s *HttpSrv) CreateRuleSet(c *gin.Context) {
	var req CreateRuleSetRequest

	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	set, err := v1.NewRuleSetLogic(c.Request.Context(), s.Core).CreateRuleSet(req.Name, req.Description, req.RuleIDs)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, set)
}

type UpdateRuleSetRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	RuleIDs     []string `json:"rule_ids"`
}

func (s *HttpSrv) UpdateRuleSet(c *gin.Context) {
	var req UpdateRuleSetRequest

	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	id, _ := c.Params.Get("id")
	set, err := v1.NewRuleSetLogic(c.Request.Context(), s.Core).UpdateRuleSet(id, req.Name, req.Description, req.RuleIDs)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, set)
}

func (s *HttpSrv) DeleteRuleSet(c *gin.Context) {
	id, _ := c.Params.Get("id")
	if err := v1.NewRuleSetLogic(c.Request.Context(), s.Core).DeleteRuleSet(id); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}
