package worker

import (
	"github.com/campusclubs/club-blog-service/internal/service"
)

// StartAuditRecorder registers the audit event handlers.
func StartAuditRecorder(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
