package http

import "github.com/gin-gonic/gin"

// Register attaches project routes. The read path is public; mutations
// go through the auth middleware applied to the admin group.
func (h *Handler) Register(public, admin *gin.RouterGroup) {
	public.GET("", h.list)
	admin.POST("", h.create)
	admin.DELETE("/:id", h.delete)
}
