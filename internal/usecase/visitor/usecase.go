package visitor

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"visitor-admission/internal/contextutil"
	"visitor-admission/internal/domain/approval"
	"visitor-admission/internal/domain/employee"
	"visitor-admission/internal/domain/notify"
	"visitor-admission/internal/domain/uow"
	domainVisitor "visitor-admission/internal/domain/visitor"

	"go.uber.org/zap"
)

const notifyTimeout = 5 * time.Second

var ErrInvalidPhoto = errors.New("photo is not valid base64")

// PhotoStore hosts an uploaded visitor photo and returns its URL.
type PhotoStore interface {
	StorePhoto(ctx context.Context, data []byte) (string, error)
}

type Usecase struct {
	visitors  domainVisitor.Repository
	employees employee.Repository
	uow       uow.UnitOfWork
	photos    PhotoStore
	notifier  notify.Notifier
	log       *zap.Logger
	now       func() time.Time
}

func NewUsecase(visitors domainVisitor.Repository, employees employee.Repository, tx uow.UnitOfWork, photos PhotoStore, notifier notify.Notifier, log *zap.Logger) *Usecase {
	return &Usecase{
		visitors:  visitors,
		employees: employees,
		uow:       tx,
		photos:    photos,
		notifier:  notifier,
		log:       log.Named("visitor"),
		now:       time.Now,
	}
}

// Register stores the visitor with a PENDING approval addressed to the resolved host.
// Photo upload and host notification are best-effort.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*VisitorDTO, error) {
	log := contextutil.Logger(ctx, u.log)

	host, err := u.employees.FindByNameAndDepartment(ctx, in.HostEmployeeName, in.HostDepartment)
	switch {
	case errors.Is(err, employee.ErrNotFound):
		return nil, employee.ErrHostNotFound
	case err != nil:
		return nil, err
	}

	var photo []byte
	if strings.TrimSpace(in.PhotoBase64) != "" {
		if photo, err = decodePhoto(in.PhotoBase64); err != nil {
			return nil, err
		}
	}

	now := u.now().UTC()
	v := &domainVisitor.Visitor{
		FullName:         strings.TrimSpace(in.FullName),
		Contact:          strings.TrimSpace(in.Contact),
		Company:          in.Company,
		Purpose:          in.Purpose,
		HostEmployeeName: strings.TrimSpace(in.HostEmployeeName),
		HostDepartment:   strings.TrimSpace(in.HostDepartment),
		CheckIn:          now,
	}
	if photo != nil && u.photos != nil {
		url, err := u.photos.StorePhoto(ctx, photo)
		if err != nil {
			log.Warn("photo upload failed", zap.Error(err))
		} else {
			v.PhotoURL = &url
		}
	}

	var pending *approval.Approval
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Visitors.Create(ctx, v); err != nil {
			return err
		}
		pending = approval.NewPending(v.ID, host.ID, now)
		return r.Approvals.Create(ctx, pending)
	})
	if err != nil {
		return nil, err
	}
	log.Info("visitor registered",
		zap.Uint64("visitor_id", v.ID),
		zap.Uint64("approval_id", pending.ID),
		zap.Uint64("host_id", host.ID),
	)

	u.notifyHost(ctx, host, v)

	dto := toDTO(v)
	dto.ApprovalID = pending.ID
	return dto, nil
}

func (u *Usecase) notifyHost(ctx context.Context, host *employee.Employee, v *domainVisitor.Visitor) {
	if u.notifier == nil {
		return
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	err := u.notifier.NotifyHost(nctx, notify.HostNotification{
		HostEmail:   host.Email,
		HostName:    host.Name,
		VisitorID:   v.ID,
		VisitorName: v.FullName,
		Purpose:     v.Purpose,
	})
	if err != nil {
		contextutil.Logger(ctx, u.log).Warn("host notification failed",
			zap.Uint64("visitor_id", v.ID), zap.String("host_email", host.Email), zap.Error(err))
	}
}

// decodePhoto accepts raw base64 or a data URI such as "data:image/png;base64,....".
func decodePhoto(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "data:") {
		i := strings.Index(raw, ",")
		if i < 0 {
			return nil, ErrInvalidPhoto
		}
		raw = raw[i+1:]
	}
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhoto, err)
	}
	return b, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*VisitorDTO, error) {
	v, err := u.visitors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(v), nil
}

// CheckOut stamps check_out under the visitor lock.
func (u *Usecase) CheckOut(ctx context.Context, id uint64) (*VisitorDTO, error) {
	var out *domainVisitor.Visitor
	err := u.uow.WithinVisitorTx(ctx, id, func(r uow.Repos, v *domainVisitor.Visitor) error {
		if err := v.CheckOutAt(u.now()); err != nil {
			return err
		}
		out = v
		return r.Visitors.Save(ctx, v)
	})
	if err != nil {
		return nil, err
	}
	return toDTO(out), nil
}
