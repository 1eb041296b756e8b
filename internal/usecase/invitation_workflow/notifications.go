package invitation_workflow

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/internal/integrations/mailer"
)

// notify отправляет письма по изменениям между before и after
// before == nil означает только что созданное приглашение
func (uc *UseCase) notify(ctx context.Context, before, after *domain.Invitation) error {
	datetimeChanged := before != nil && !before.InvitationAt.Equal(after.InvitationAt)
	becameScheduled := after.State == domain.InvitationScheduled && (before == nil || before.State != domain.InvitationScheduled)
	becameAttended := after.State == domain.InvitationAttended && (before == nil || before.State != domain.InvitationAttended)

	if !datetimeChanged && !becameScheduled && !becameAttended {
		return nil
	}

	settings, err := uc.settings.Current(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	data := uc.mailData(after, settings)

	if datetimeChanged {
		if err := uc.notifier.Send(ctx, mailer.TemplateDatetimeChange, after.ID, after.Guest.Email, data); err != nil {
			return err
		}
	}

	if becameScheduled {
		var attachments []mailer.Attachment
		if att, ok := buildingImage(settings); ok {
			attachments = append(attachments, att)
		}
		if err := uc.notifier.Send(ctx, mailer.TemplateNewInvitation, after.ID, after.Guest.Email, data, attachments...); err != nil {
			return err
		}
	}

	if becameAttended {
		if err := uc.notifier.Send(ctx, mailer.TemplateAttendance, after.ID, after.OfficerEmail, data); err != nil {
			return err
		}
	}

	return nil
}

func (uc *UseCase) mailData(inv *domain.Invitation, settings *domain.Settings) mailer.InvitationMail {
	renter := inv.RenterName
	if renter == "" {
		renter = domain.UnknownRenterName
	}
	return mailer.InvitationMail{
		Sequence:     inv.Sequence,
		Subject:      inv.Subject,
		GuestName:    inv.Guest.Name,
		RenterName:   renter,
		OfficerName:  inv.OfficerName,
		InvitationAt: inv.InvitationAt.In(uc.cfg.Location),
		TimeZone:     uc.cfg.Location.String(),
		LocationURL:  settings.LocationURL,
	}
}

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// buildingImage декодирует фото здания из настроек во вложение
func buildingImage(settings *domain.Settings) (mailer.Attachment, bool) {
	if settings == nil || settings.BuildingImage == "" {
		return mailer.Attachment{}, false
	}

	data, err := base64.StdEncoding.DecodeString(settings.BuildingImage)
	if err != nil || len(data) == 0 {
		return mailer.Attachment{}, false
	}

	contentType := http.DetectContentType(data)

	return mailer.Attachment{
		Filename:    "building" + imageExtensions[contentType],
		ContentType: contentType,
		Data:        data,
	}, true
}
