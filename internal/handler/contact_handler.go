package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/metalcycle/internal/service"
)

// SubmitContact stores a public contact form submission.
func (a *API) SubmitContact(c *gin.Context) {
	input := service.ContactInput{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Phone:   c.PostForm("phone"),
		Subject: c.PostForm("subject"),
		Message: c.PostForm("message"),
	}

	if _, err := a.contacts.Submit(input); err != nil {
		status := http.StatusInternalServerError
		message := "could not send your message, please try again"
		if errors.Is(err, service.ErrMessageInvalid) {
			status = http.StatusBadRequest
			message = err.Error()
		}
		a.renderHTML(c, status, "contact.html", gin.H{
			"title": "Contact",
			"error": message,
			"form":  input,
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "contact.html", gin.H{
		"title":   "Contact",
		"success": "thanks for reaching out, we will get back to you soon",
	})
}

// ShowMessageList renders the contact inbox.
func (a *API) ShowMessageList(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "admin_messages.html", gin.H{
		"title": "Messages",
	})
}

// GetMessages lists contact messages, optionally unread only.
func (a *API) GetMessages(c *gin.Context) {
	messages, err := a.contacts.List(c.Query("unread") == "true")
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not load messages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// MarkMessageRead flags a message as handled.
func (a *API) MarkMessageRead(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid message id")
		return
	}

	if err := a.contacts.MarkRead(id); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			respondError(c, http.StatusNotFound, "message not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not update message")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}

// DeleteMessage removes a message.
func (a *API) DeleteMessage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid message id")
		return
	}

	if err := a.contacts.Delete(id); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			respondError(c, http.StatusNotFound, "message not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not delete message")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}
