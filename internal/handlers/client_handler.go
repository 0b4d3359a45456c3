package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/barberia-app/barberia-api/internal/models"
	"github.com/barberia-app/barberia-api/internal/services"
)

type ClientHandler struct {
	clientService     *services.ClientService
	creditSaleService *services.CreditSaleService
}

func NewClientHandler(clientService *services.ClientService, creditSaleService *services.CreditSaleService) *ClientHandler {
	return &ClientHandler{clientService: clientService, creditSaleService: creditSaleService}
}

// @Summary List Clients
// @Description Get all clients, optionally filtered by name
// @Tags Clients
// @Produce json
// @Param search query string false "Filter by name"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /clients [get]
func (h *ClientHandler) Index(c *gin.Context) {
	clients, err := h.clientService.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ClientResponse, 0, len(clients))
	for _, cl := range clients {
		responses = append(responses, cl.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"clients": responses})
}

// @Summary Get Client
// @Description Get a client by ID
// @Tags Clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} models.ClientResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *ClientHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	client, err := h.clientService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client.ToResponse()})
}

type ClientRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
}

// @Summary Create Client
// @Description Register a new client
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body ClientRequest true "Client Data"
// @Success 201 {object} models.ClientResponse
// @Security BearerAuth
// @Router /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := BindNestedOrFlat(c, "client", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client := &models.Client{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Notes: req.Notes,
	}

	if err := h.clientService.Create(c.Request.Context(), client); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"client": client.ToResponse()})
}

// @Summary Update Client
// @Description Update an existing client
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Param request body ClientRequest true "Client Data"
// @Success 200 {object} models.ClientResponse
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	client, err := h.clientService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	var req ClientRequest
	if err := BindNestedOrFlat(c, "client", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client.Name = req.Name
	client.Phone = req.Phone
	client.Email = req.Email
	client.Notes = req.Notes

	if err := h.clientService.Update(c.Request.Context(), client); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": client.ToResponse()})
}

// @Summary Delete Client
// @Description Delete a client (Admin)
// @Tags Clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.clientService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cliente eliminado"})
}

// @Summary Client Credit Sales
// @Description Get all credit sales for a client
// @Tags Clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /clients/{id}/credit-sales [get]
func (h *ClientHandler) CreditSales(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	sales, err := h.creditSaleService.ListByClient(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.CreditSaleResponse, 0, len(sales))
	for _, s := range sales {
		responses = append(responses, s.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"credit_sales": responses})
}
