package fedex

// Wire types for the carrier REST API. Field names follow the carrier's
// JSON contract and must not be renamed.

// tokenResponse is the OAuth2 client-credentials token payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}

// apiErrorResponse is the carrier's structured error payload.
type apiErrorResponse struct {
	TransactionID string     `json:"transactionId,omitempty"`
	Errors        []apiError `json:"errors,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// ParameterList carries field-level validation detail
	ParameterList []apiErrorParameter `json:"parameterList,omitempty"`
}

type apiErrorParameter struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// wireAddress is the carrier's address shape shared by all operations.
type wireAddress struct {
	StreetLines         []string `json:"streetLines"`
	City                string   `json:"city"`
	StateOrProvinceCode string   `json:"stateOrProvinceCode"`
	PostalCode          string   `json:"postalCode"`
	CountryCode         string   `json:"countryCode"`
	Residential         bool     `json:"residential,omitempty"`
}

type wireParty struct {
	Address wireAddress  `json:"address"`
	Contact *wireContact `json:"contact,omitempty"`
}

type wireContact struct {
	PersonName  string `json:"personName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type wireWeight struct {
	Units string  `json:"units"`
	Value float64 `json:"value"`
}

type wireDimensions struct {
	Length int    `json:"length"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Units  string `json:"units"`
}

type wireMoney struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

type packageLineItem struct {
	Weight        wireWeight      `json:"weight"`
	Dimensions    *wireDimensions `json:"dimensions,omitempty"`
	DeclaredValue *wireMoney      `json:"declaredValue,omitempty"`
}

// rateRequest is the rate-quote request body. Freight shipments carry
// freightShipmentDetail; smartpost shipments carry smartPostInfoDetail.
type rateRequest struct {
	AccountNumber                accountNumber          `json:"accountNumber"`
	RateRequestControlParameters *rateControlParameters `json:"rateRequestControlParameters,omitempty"`
	RequestedShipment            requestedShipment      `json:"requestedShipment"`
	CarrierCodes                 []string               `json:"carrierCodes,omitempty"`
}

type accountNumber struct {
	Value string `json:"value"`
}

type rateControlParameters struct {
	ReturnTransitTimes bool `json:"returnTransitTimes"`
}

type requestedShipment struct {
	Shipper                   wireParty         `json:"shipper"`
	Recipient                 wireParty         `json:"recipient"`
	ShipDateStamp             string            `json:"shipDateStamp,omitempty"`
	PickupType                string            `json:"pickupType"`
	ServiceType               string            `json:"serviceType,omitempty"`
	PackagingType             string            `json:"packagingType,omitempty"`
	RateRequestType           []string          `json:"rateRequestType"`
	RequestedPackageLineItems []packageLineItem `json:"requestedPackageLineItems"`
	FreightShipmentDetail     *freightDetail    `json:"freightShipmentDetail,omitempty"`
	SmartPostInfoDetail       *smartPostDetail  `json:"smartPostInfoDetail,omitempty"`
}

type freightDetail struct {
	Role               string     `json:"role"`
	FreightClass       string     `json:"freightClass"`
	TotalHandlingUnits int        `json:"totalHandlingUnits"`
	DeclaredValue      *wireMoney `json:"declaredValue,omitempty"`
}

type smartPostDetail struct {
	Indicia string `json:"indicia"`
	HubID   string `json:"hubId"`
}

// rateResponse is the rate-quote reply. Each rateReplyDetail is one
// service; ratedShipmentDetails may repeat per rate type (LIST/ACCOUNT).
type rateResponse struct {
	TransactionID string     `json:"transactionId,omitempty"`
	Output        rateOutput `json:"output"`
}

type rateOutput struct {
	RateReplyDetails []rateReplyDetail `json:"rateReplyDetails"`
	Alerts           []rateAlert       `json:"alerts,omitempty"`
}

type rateAlert struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type rateReplyDetail struct {
	ServiceType          string                `json:"serviceType"`
	ServiceName          string                `json:"serviceName,omitempty"`
	RatedShipmentDetails []ratedShipmentDetail `json:"ratedShipmentDetails"`
	OperationalDetail    *operationalDetail    `json:"operationalDetail,omitempty"`
	Commit               *commitDetail         `json:"commit,omitempty"`
}

type ratedShipmentDetail struct {
	RateType       string  `json:"rateType"`
	TotalNetCharge float64 `json:"totalNetCharge"`
	Currency       string  `json:"currency,omitempty"`
}

type operationalDetail struct {
	TransitTime string `json:"transitTime,omitempty"`
}

type commitDetail struct {
	// TransitDays holds the carrier's committed transit estimate
	TransitDays *transitDays `json:"transitDays,omitempty"`
	DateDetail  *dateDetail  `json:"dateDetail,omitempty"`
}

type transitDays struct {
	MinimumTransitTime string `json:"minimumTransitTime,omitempty"`
	Description        string `json:"description,omitempty"`
}

type dateDetail struct {
	DayOfWeek string `json:"dayOfWeek,omitempty"`
	DayFormat string `json:"dayFormat,omitempty"`
}

// shipRequest creates a label.
type shipRequest struct {
	AccountNumber        accountNumber     `json:"accountNumber"`
	LabelResponseOptions string            `json:"labelResponseOptions,omitempty"`
	RequestedShipment    requestedShipment `json:"requestedShipment"`
}

type shipResponse struct {
	TransactionID string     `json:"transactionId,omitempty"`
	Output        shipOutput `json:"output"`
}

type shipOutput struct {
	TransactionShipments []transactionShipment `json:"transactionShipments"`
}

type transactionShipment struct {
	MasterTrackingNumber string          `json:"masterTrackingNumber"`
	ServiceType          string          `json:"serviceType"`
	PieceResponses       []pieceResponse `json:"pieceResponses,omitempty"`
}

type pieceResponse struct {
	TrackingNumber   string            `json:"trackingNumber"`
	PackageDocuments []packageDocument `json:"packageDocuments,omitempty"`
}

type packageDocument struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType,omitempty"`
	DocType     string `json:"docType,omitempty"`
}

// trackRequest queries tracking by number.
type trackRequest struct {
	IncludeDetailedScans bool            `json:"includeDetailedScans"`
	TrackingInfo         []trackingQuery `json:"trackingInfo"`
}

type trackingQuery struct {
	TrackingNumberInfo trackingNumberInfo `json:"trackingNumberInfo"`
}

type trackingNumberInfo struct {
	TrackingNumber string `json:"trackingNumber"`
}

type trackResponse struct {
	Output trackOutput `json:"output"`
}

type trackOutput struct {
	CompleteTrackResults []completeTrackResult `json:"completeTrackResults"`
}

type completeTrackResult struct {
	TrackingNumber string        `json:"trackingNumber"`
	TrackResults   []trackResult `json:"trackResults"`
}

type trackResult struct {
	LatestStatusDetail *statusDetail `json:"latestStatusDetail,omitempty"`
	ScanEvents         []scanEvent   `json:"scanEvents,omitempty"`
}

type statusDetail struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type scanEvent struct {
	Date             string        `json:"date"`
	EventDescription string        `json:"eventDescription"`
	ScanLocation     *scanLocation `json:"scanLocation,omitempty"`
}

type scanLocation struct {
	City                string `json:"city,omitempty"`
	StateOrProvinceCode string `json:"stateOrProvinceCode,omitempty"`
	CountryCode         string `json:"countryCode,omitempty"`
}

// addressValidationRequest checks deliverability of one address.
type addressValidationRequest struct {
	AddressesToValidate []addressToValidate `json:"addressesToValidate"`
}

type addressToValidate struct {
	Address wireAddress `json:"address"`
}

type addressValidationResponse struct {
	Output addressValidationOutput `json:"output"`
}

type addressValidationOutput struct {
	ResolvedAddresses []resolvedAddress `json:"resolvedAddresses"`
}

type resolvedAddress struct {
	Classification   string            `json:"classification,omitempty"`
	Attributes       map[string]string `json:"attributes,omitempty"`
	CustomerMessages []rateAlert       `json:"customerMessages,omitempty"`
}

// cancelRequest voids a shipment by tracking number.
type cancelRequest struct {
	AccountNumber  accountNumber `json:"accountNumber"`
	TrackingNumber string        `json:"trackingNumber"`
}

type cancelResponse struct {
	Output cancelOutput `json:"output"`
}

type cancelOutput struct {
	CancelledShipment bool `json:"cancelledShipment"`
}
