package apimodels

type Response struct {
	Status  string            `json:"status"`            //результат обработки fail/success
	Message string            `json:"message,omitempty"` //сообщение ошибки
	Errors  map[string]string `json:"errors,omitempty"`  //ошибки валидации по полям формы
	Data    interface{}       `json:"data,omitempty"`    //данные ответа
}

type ScrollerResponse struct {
	Response
	RowCount  int64 `json:"row_count"`  //общее кол-во записей, учитывая фильтр
	PageCount int   `json:"page_count"` //кол-во страниц
	Page      int   `json:"page"`       //текущая страница
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewValidationError(message string, fields map[string]string) Response {
	return Response{
		Status:  "fail",
		Message: message,
		Errors:  fields,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

type Pagination struct {
	Limit int `json:"limit" query:"limit"` // Записей на странице
	Page  int `json:"page" query:"page"`   // Страница (1,2,3..)
}

func (r Pagination) GetPage(defaultLimit int) (page, limit int) {
	page = 1
	limit = defaultLimit
	if r.Page > 0 {
		page = r.Page
	}
	if r.Limit > 0 {
		limit = r.Limit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func NewScrollerResponse(data interface{}, rowCount int64, page, pageCount int) ScrollerResponse {
	return ScrollerResponse{
		Response: Response{
			Status: "success",
			Data:   data,
		},
		RowCount:  rowCount,
		PageCount: pageCount,
		Page:      page,
	}
}
