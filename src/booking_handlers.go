package main

import (
	"fmt"
	"net/http"
	"staybook/src/common"
	"staybook/src/config"
	"staybook/src/lib"
	"staybook/src/lib/mailer"
	"staybook/src/models"
	"staybook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func (a *App) bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			buckets, err := common.ListUserBookings(a.DB, ctx.GetUint("id"))
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Bookings retrieved", "bookings": buckets})
		}).
		GET("/owner/bookings", func(ctx *gin.Context) {
			buckets, err := common.ListOwnerBookings(a.DB, ctx.GetUint("id"))
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Bookings retrieved", "bookings": buckets})
		}).
		POST("/create-booking", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			booking, err := common.CreateBooking(a.DB, ctx.GetUint("id"), &body)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"message": "Booking created", "booking": booking})
		}).
		POST("/cancel-booking", func(ctx *gin.Context) {
			var body types.CancelBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			cancellation, err := common.CancelBooking(a.DB, ctx.GetUint("id"), &body)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message":      "Booking cancelled",
				"cancellation": cancellation,
				"refundAmount": cancellation.RefundAmount,
			})
		}).
		PUT("/booking/:bookingId/status", func(ctx *gin.Context) {
			var params types.BookingURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			var body types.UpdateBookingStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			booking, err := common.ConfirmBooking(a.DB, ctx.GetUint("id"), params.BookingID)
			if err != nil {
				respondError(ctx, err)
				return
			}
			a.sendBookingConfirmation(booking)
			ctx.JSON(http.StatusOK, gin.H{"message": "Booking status updated", "booking": booking})
		})
	return g
}

func (a *App) sendBookingConfirmation(booking *models.Booking) {
	guest, err := common.GetUserByID(a.DB, booking.UserID)
	if err != nil {
		log.Warn().Err(err).Uint("booking_id", booking.ID).Msg("Could not load guest for confirmation mail")
		return
	}
	mailer.Deliver(a.Mailer, &lib.SendMailInput{
		To:      []string{guest.Email},
		Subject: fmt.Sprintf("Booking #%d confirmed", booking.ID),
		Body: fmt.Sprintf("Hi %s,\n\nYour stay from %s to %s is confirmed.\nTotal: %.2f\n",
			guest.FirstName,
			booking.StartDate.Format(config.DATE_FORMAT),
			booking.EndDate.Format(config.DATE_FORMAT),
			booking.Total),
	})
}
