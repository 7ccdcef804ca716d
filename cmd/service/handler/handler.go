package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/markstyle-ai/markstyle/app/core"
)

type HttpSrv struct {
	Core   *core.Core
	Engine *gin.Engine
}
