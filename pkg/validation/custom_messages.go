package validation

// CustomMessage returns field specific messages keyed by validation tag.
// Fields are named by their JSON key.
func CustomMessage(field string) map[string]string {
	var customValidationMessages = map[string]map[string]string{
		"email": {
			"required": "Email is required",
			"email":    "Invalid email format",
		},
		"phone": {
			"required": "Phone number is required",
			"phone":    "Invalid phone number",
		},
		"password": {
			"required": "Password is required",
			"min":      "Password must be at least 8 characters",
		},
		"newPassword": {
			"required": "New password is required",
			"min":      "Password must be at least 8 characters",
		},
		"fullName": {
			"required": "Full name is required",
			"min":      "Full name must be between 2 and 100 characters",
			"max":      "Full name must be between 2 and 100 characters",
		},
		"categoryId": {
			"required": "Category ID is required",
		},
		"customerId": {
			"required": "Customer ID is required",
		},
		"name": {
			"required": "Name is required",
			"min":      "Name must be between 2 and 150 characters",
			"max":      "Name must be between 2 and 150 characters",
		},
		"description": {
			"max": "Description must be less than 2000 characters",
		},
		"baseSalePrice": {
			"gte": "Sale price must be positive",
		},
		"baseRentalPrice": {
			"gte": "Rental price must be positive",
		},
		"baseSalary": {
			"required": "Base salary is required",
			"gt":       "Salary must be greater than 0",
		},
		"jobTitle": {
			"required": "Job title is required",
		},
		"employmentType": {
			"required": "Employment type is required",
			"oneof":    "Invalid employment type",
		},
		"salaryType": {
			"required": "Salary type is required",
			"oneof":    "Invalid salary type",
		},
		"size": {
			"required": "Size is required",
			"max":      "Size must be less than 20 characters",
		},
		"color": {
			"required": "Color is required",
			"max":      "Color must be less than 50 characters",
		},
		"sku": {
			"required": "SKU is required",
			"max":      "SKU must be less than 50 characters",
		},
		"url": {
			"required": "Image URL is required",
			"max":      "URL must be less than 500 characters",
		},
		"token": {
			"required": "Token is required",
		},
		"refreshToken": {
			"required": "Refresh token is required",
		},
		"idToken": {
			"required": "ID token is required",
		},
	}
	return customValidationMessages[field]
}
