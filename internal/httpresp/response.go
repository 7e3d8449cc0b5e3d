package httpresp

import "github.com/gin-gonic/gin"

type ListResponse[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(201, data)
}

func Message(c *gin.Context, msg string) {
	c.JSON(200, gin.H{"message": msg})
}

// List wraps paginated results; Total is the unpaginated count.
func List[T any](c *gin.Context, data []T, total int64) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: total,
	})
}
