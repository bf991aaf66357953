package handler

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// CallerHeader 调用方身份头，由外部签名交易层校验后注入
const CallerHeader = "X-Caller-Address"

// callerAddress 取调用方身份，缺失或非法时直接写400响应
func callerAddress(c *gin.Context) (common.Address, bool) {
	raw := c.GetHeader(CallerHeader)
	if !common.IsHexAddress(raw) {
		ErrorResponse(c, http.StatusBadRequest, "无效的调用方地址")
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

// pathAddress 取路径中的地址参数
func pathAddress(c *gin.Context, param string) (common.Address, bool) {
	raw := c.Param(param)
	if !common.IsHexAddress(raw) {
		ErrorResponse(c, http.StatusBadRequest, "无效的地址")
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}
