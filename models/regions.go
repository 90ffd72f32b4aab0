package models

// Reference lists served to the form dropdowns. These mirror the values the
// reports are filtered and bucketed on; free-text entry is still accepted on
// the report rows themselves.

var States = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh", "Goa", "Gujarat",
	"Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka", "Kerala", "Madhya Pradesh",
	"Maharashtra", "Manipur", "Meghalaya", "Mizoram", "Nagaland", "Odisha", "Punjab",
	"Rajasthan", "Sikkim", "Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh",
	"Uttarakhand", "West Bengal", "Delhi", "Jammu & Kashmir", "Ladakh", "Puducherry", "Chandigarh",
}

var BobRegions = []string{
	"AHMEDABAD REGION", "BENGALURU REGION", "BARODA REGION", "CHENNAI REGION",
	"HYDERABAD REGION", "KOLKATA REGION", "LUCKNOW REGION", "MUMBAI REGION",
	"NEW DELHI REGION", "PUNE REGION", "RANCHI REGION", "SHIVAMOGGA REGION", "SURAT REGION",
	"CHANDIGARH REGION",
}

var OurRegions = []string{
	"AHMEDABAD", "BANGALORE", "CHENNAI", "DELHI", "HYDERABAD", "KOLKATA", "MUMBAI",
	"PUNE", "SRIDHAR CORPORATE", "SURAT", "CHANDIGARH",
}

var Zones = []string{
	"AHMEDABAD ZONE", "BENGALURU ZONE", "BHUBANESWAR ZONE", "CHENNAI ZONE",
	"HYDERABAD ZONE", "KOLKATA ZONE", "LUCKNOW ZONE", "MANGALURU ZONE",
	"MUMBAI ZONE", "NEW DELHI ZONE", "PUNE ZONE",
}

var PaymentStatuses = []string{"Pending", "Paid", "Overdue"}
var InvoiceStatuses = []string{"Pending", "Raised", "Cleared"}
var PayoutStatuses = []string{"Pending", "Paid", "Processing", "Hold"}
