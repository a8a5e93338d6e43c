// Package vmstest поднимает in-memory сервис вакансий для тестов
package vmstest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"vms-console/lib/vmsclient"
	vmsapimodels "vms-console/models/api/vms"
)

const (
	AdminUsername  = "admin"
	AdminPassword  = "Admin@123"
	VendorUsername = "vendor1"
	VendorPassword = "Vendor@123"
	ValidOtp       = "123456"
)

type Request struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

func (r Request) JSON() map[string]interface{} {
	result := map[string]interface{}{}
	json.Unmarshal(r.Body, &result)
	return result
}

type Server struct {
	*httptest.Server
	mu       sync.Mutex
	jobs     []vmsapimodels.JobDescription
	vendors  []vmsapimodels.Vendor
	profile  vmsapimodels.AdminProfile
	requests []Request
	failures map[string]int
	gates    map[string]chan struct{}
	token    string
}

func New(t testing.TB) *Server {
	s := &Server{
		failures: map[string]int{},
		gates:    map[string]chan struct{}{},
		token:    "remote-token",
		profile: vmsapimodels.AdminProfile{
			ID:       "A1",
			Username: "admin",
			Email:    "admin@vms.com",
			Mobile:   "9876543210",
			Location: "Pune",
			Role:     "admin",
		},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Server.Close)
	return s
}

// SetToken токен, который вернет login
func (s *Server) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Server) SetJobs(jobs ...vmsapimodels.JobDescription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = jobs
}

func (s *Server) SetVendors(vendors ...vmsapimodels.Vendor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vendors = vendors
}

func (s *Server) Jobs() []vmsapimodels.JobDescription {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]vmsapimodels.JobDescription, len(s.jobs))
	copy(result, s.jobs)
	return result
}

func (s *Server) Vendors() []vmsapimodels.Vendor {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]vmsapimodels.Vendor, len(s.vendors))
	copy(result, s.vendors)
	return result
}

// Fail все запросы method path отвечают status
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = status
}

func (s *Server) Recover(method, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, method+" "+path)
}

// Hold задерживает ответы на method path до вызова release
func (s *Server) Hold(method, path string) (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gates[method+" "+path] = gate
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.gates, method+" "+path)
			s.mu.Unlock()
			close(gate)
		})
	}
}

func (s *Server) Requests(method, path string) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := []Request{}
	for _, r := range s.requests {
		if r.Method == method && r.Path == path {
			result = append(result, r)
		}
	}
	return result
}

func (s *Server) Client(session vmsclient.SessionContext) vmsclient.Provider {
	return vmsclient.NewWithOptions(s.Options(), session)
}

func (s *Server) Options() vmsclient.Options {
	return vmsclient.Options{
		Host:    s.URL,
		Timeout: 5 * time.Second,
	}
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	// multipart разбирается в routeAdmin повторно
	r.Body = io.NopCloser(bytes.NewReader(body))
	key := r.Method + " " + r.URL.Path
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
		Body:   body,
	})
	gate := s.gates[key]
	status, failing := s.failures[key]
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if failing {
		writeJSON(w, status, map[string]string{"message": "request failed"})
		return
	}
	s.route(w, r, body)
}

func (s *Server) route(w http.ResponseWriter, r *http.Request, body []byte) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 || parts[0] != "api" {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch parts[1] {
	case "admin":
		s.routeAdmin(w, r, parts[2:], body)
	case "vendor":
		s.routeVendor(w, r, parts[2:], body)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	}
}

func (s *Server) routeAdmin(w http.ResponseWriter, r *http.Request, parts []string, body []byte) {
	switch {
	case r.Method == http.MethodGet && parts[0] == "job-descriptions":
		writeJSON(w, http.StatusOK, s.jobs)
	case r.Method == http.MethodGet && parts[0] == "job-description" && len(parts) == 2:
		if idx := s.jobIndex(parts[1]); idx >= 0 {
			writeJSON(w, http.StatusOK, s.jobs[idx])
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Job description not found"})
	case r.Method == http.MethodPut && parts[0] == "update" && len(parts) == 2:
		idx := s.jobIndex(parts[1])
		if idx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Job description not found"})
			return
		}
		req := vmsapimodels.JobUpdateRequest{}
		json.Unmarshal(body, &req)
		s.jobs[idx].Title = req.Title
		s.jobs[idx].Description = req.Description
		s.jobs[idx].Verified = req.Verified
		s.jobs[idx].AssignedVendors = req.AssignedVendors
		writeJSON(w, http.StatusOK, s.jobs[idx])
	case r.Method == http.MethodDelete && parts[0] == "delete" && len(parts) == 2:
		idx := s.jobIndex(parts[1])
		if idx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Job description not found"})
			return
		}
		s.jobs = append(s.jobs[:idx:idx], s.jobs[idx+1:]...)
		writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
	case r.Method == http.MethodPut && len(parts) == 2 && parts[1] == "update-status":
		idx := s.jobIndex(parts[0])
		if idx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Job description not found"})
			return
		}
		req := vmsapimodels.JobStatusRequest{}
		json.Unmarshal(body, &req)
		s.jobs[idx].Verified = req.Verified
		writeJSON(w, http.StatusOK, s.jobs[idx])
	case r.Method == http.MethodPut && (parts[0] == "assign-vendor" || parts[0] == "unassign-vendor"):
		req := vmsapimodels.AssignRequest{}
		json.Unmarshal(body, &req)
		idx := s.jobIndex(req.JobID)
		vIdx := s.vendorIndex(req.VendorID)
		if idx < 0 || vIdx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Job or vendor not found"})
			return
		}
		job := &s.jobs[idx]
		kept := []vmsapimodels.Vendor{}
		for _, v := range job.AssignedVendors {
			if v.ID != req.VendorID {
				kept = append(kept, v)
			}
		}
		if parts[0] == "assign-vendor" {
			kept = append(kept, s.vendors[vIdx])
		}
		job.AssignedVendors = kept
		writeJSON(w, http.StatusOK, job)
	case r.Method == http.MethodPost && parts[0] == "send-email":
		writeJSON(w, http.StatusOK, map[string]string{"message": "Email sent"})
	case r.Method == http.MethodPost && parts[0] == "create":
		s.create(w, body)
	case r.Method == http.MethodPost && parts[0] == "login":
		req := vmsapimodels.LoginRequest{}
		json.Unmarshal(body, &req)
		if req.Username != AdminUsername || req.Password != AdminPassword {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, vmsapimodels.LoginResponse{Token: s.token})
	case r.Method == http.MethodPost && parts[0] == "send-otp":
		writeJSON(w, http.StatusOK, map[string]string{"message": "OTP sent"})
	case r.Method == http.MethodPost && parts[0] == "verify-otp":
		req := vmsapimodels.VerifyOtpRequest{}
		json.Unmarshal(body, &req)
		if req.Otp != ValidOtp {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid OTP"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset"})
	case r.Method == http.MethodGet && parts[0] == "profile":
		writeJSON(w, http.StatusOK, s.profile)
	case r.Method == http.MethodPut && parts[0] == "profile":
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad form"})
			return
		}
		s.profile.Username = r.FormValue("username")
		s.profile.Email = r.FormValue("email")
		s.profile.Mobile = r.FormValue("mobile")
		s.profile.Location = r.FormValue("location")
		if _, header, err := r.FormFile("image"); err == nil {
			s.profile.ImageUrl = "/uploads/" + header.Filename
		}
		writeJSON(w, http.StatusOK, vmsapimodels.ProfileUpdateResponse{Admin: s.profile})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	}
}

func (s *Server) create(w http.ResponseWriter, body []byte) {
	fields := map[string]interface{}{}
	json.Unmarshal(body, &fields)
	if _, isVendor := fields["password"]; isVendor {
		req := vmsapimodels.VendorCreateRequest{}
		json.Unmarshal(body, &req)
		registered := req.RegistrationDate
		vendor := vmsapimodels.Vendor{
			ID:               "V" + req.Username,
			Username:         req.Username,
			Email:            req.Email,
			Verified:         req.Verified,
			RegistrationDate: &registered,
		}
		s.vendors = append(s.vendors, vendor)
		writeJSON(w, http.StatusCreated, vendor)
		return
	}
	req := vmsapimodels.JobCreateRequest{}
	json.Unmarshal(body, &req)
	job := vmsapimodels.JobDescription{
		ID:          "J" + req.Title,
		Title:       req.Title,
		Description: req.Description,
	}
	s.jobs = append(s.jobs, job)
	writeJSON(w, http.StatusCreated, job)
}

func (s *Server) routeVendor(w http.ResponseWriter, r *http.Request, parts []string, body []byte) {
	switch {
	case r.Method == http.MethodGet && parts[0] == "vendors":
		writeJSON(w, http.StatusOK, vmsapimodels.VendorListResponse{
			Vendors:      s.vendors,
			TotalVendors: int64(len(s.vendors)),
		})
	case r.Method == http.MethodPost && parts[0] == "login":
		req := vmsapimodels.LoginRequest{}
		json.Unmarshal(body, &req)
		idx := -1
		for i, v := range s.vendors {
			if v.Username == req.Username {
				idx = i
			}
		}
		if idx < 0 || req.Password != VendorPassword {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, vmsapimodels.VendorLoginResponse{Token: s.token, VendorID: s.vendors[idx].ID})
	case r.Method == http.MethodGet && len(parts) == 1:
		idx := s.vendorIndex(parts[0])
		if idx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Vendor not found"})
			return
		}
		vendor := s.vendors[idx]
		vendor.AssignedJobDescriptions = []vmsapimodels.AssignedJob{}
		for _, job := range s.jobs {
			for _, v := range job.AssignedVendors {
				if v.ID == vendor.ID {
					vendor.AssignedJobDescriptions = append(vendor.AssignedJobDescriptions, vmsapimodels.AssignedJob{JobID: job.ID, JobTitle: job.Title})
				}
			}
		}
		writeJSON(w, http.StatusOK, vendor)
	case r.Method == http.MethodPut && len(parts) == 2 && parts[1] == "update-verified":
		idx := s.vendorIndex(parts[0])
		if idx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Vendor not found"})
			return
		}
		req := vmsapimodels.VendorVerifiedRequest{}
		json.Unmarshal(body, &req)
		s.vendors[idx].Verified = req.Verified
		writeJSON(w, http.StatusOK, s.vendors[idx])
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	}
}

func (s *Server) jobIndex(id string) int {
	for idx, job := range s.jobs {
		if job.ID == id {
			return idx
		}
	}
	return -1
}

func (s *Server) vendorIndex(id string) int {
	for idx, v := range s.vendors {
		if v.ID == id {
			return idx
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
